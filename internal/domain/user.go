package domain

import (
	"context"
	"time"
	"unicode"
)

// Roles carried in the token and checked by admin routes.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Principal is the authenticated caller as read from a verified token.
type Principal struct {
	UserID   int64
	Username string
	Email    string
	Role     string
}

// IsAdmin reports whether the caller holds the Admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanActOn reports whether the caller may modify a resource owned by ownerID.
func (p Principal) CanActOn(ownerID *int64) bool {
	if p.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == p.UserID
}

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// CheckPassword returns the password policy violations of pw; nil means acceptable.
func CheckPassword(pw string) []string {
	var errs []string
	if len(pw) < MinPasswordLength {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(pw) > MaxPasswordBytes {
		errs = append(errs, "password must be at most 72 bytes")
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		errs = append(errs, "password must contain an uppercase letter, a lowercase letter, a digit and a special character")
	}
	return errs
}

// SignUpInput holds the registration data.
type SignUpInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UserUpdate is a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Username    *string
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Role        *string
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, int, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

// UserService defines the business logic for registration, authentication and profiles.
type UserService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	VerifyAndGetUser(ctx context.Context, identifier, password string) (*User, error)
	Login(ctx context.Context, identifier, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, int, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, actor Principal, id int64, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id int64) error
}
