package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

type userService struct {
	users        domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	emailService domain.EmailService
	logger       *slog.Logger
	now          func() time.Time
}

// NewUserService creates a UserService. emailService may be nil to skip welcome emails.
func NewUserService(users domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, emailService domain.EmailService, logger *slog.Logger) domain.UserService {
	return &userService{
		users:        users,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *userService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if errs := domain.CheckPassword(in.Password); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	if taken, err := s.IsUsernameTaken(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateUsername
	}
	if taken, err := s.IsEmailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, Username: user.Username, FirstName: user.FirstName}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email not sent", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

// VerifyAndGetUser returns the user matching identifier (username or email) and
// password, or domain.ErrInvalidCredentials.
func (s *userService) VerifyAndGetUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	user, err := s.VerifyAndGetUser(ctx, identifier, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	users, total, err := s.users.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return exists(s.users.GetByEmail(ctx, normalizeEmail(email)))
}

func (s *userService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return exists(s.users.GetByUsername(ctx, strings.TrimSpace(username)))
}

func exists[T any](v *T, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return v != nil, nil
}

// Update applies a partial update. Users may only update themselves; only
// admins may update others or change a role.
func (s *userService) Update(ctx context.Context, actor domain.Principal, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	if upd.Role != nil && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username != user.Username {
			other, err := s.users.GetByUsername(ctx, username)
			if err := takenByOther(other, err, id, domain.ErrDuplicateUsername); err != nil {
				return nil, err
			}
		}
		user.Username = username
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email != user.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err := takenByOther(other, err, id, domain.ErrDuplicateEmail); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if upd.Password != nil {
		if errs := domain.CheckPassword(*upd.Password); len(errs) > 0 {
			return nil, domain.NewValidationError(errs...)
		}
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
	}
	if upd.Role != nil {
		if *upd.Role != domain.RoleUser && *upd.Role != domain.RoleAdmin {
			return nil, domain.NewValidationError(`role must be "User" or "Admin"`)
		}
		user.Role = *upd.Role
	}
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// takenByOther returns dupErr when a lookup found a user other than selfID.
func takenByOther(other *domain.User, lookupErr error, selfID int64, dupErr error) error {
	if lookupErr != nil {
		if errors.Is(lookupErr, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check uniqueness: %w", lookupErr)
	}
	if other != nil && other.ID != selfID {
		return dupErr
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
