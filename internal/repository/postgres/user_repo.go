package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, phone_number, role, created_at, updated_at`

type userRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// mapUserWriteErr translates unique violations on uq_username / uq_email.
func mapUserWriteErr(err error) error {
	code, constraint := pqErrorCode(err)
	if code != codeUniqueViolation {
		return err
	}
	switch constraint {
	case "uq_username":
		return domain.ErrDuplicateUsername
	case "uq_email":
		return domain.ErrDuplicateEmail
	}
	return domain.ErrAlreadyExists
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, phone_number, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.PhoneNumber, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return mapUserWriteErr(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1)`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = LOWER($1) ORDER BY id LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, identifier))
}

func (r *userRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limitArg(p.Limit()), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, first_name = $4, last_name = $5,
		    phone_number = $6, role = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.PhoneNumber, u.Role, u.UpdatedAt, u.ID)
	if err != nil {
		return mapUserWriteErr(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user. The schema cascades the user's saves and nulls the
// author of their events.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
