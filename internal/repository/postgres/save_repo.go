package postgres

import (
	"context"

	"eventmanagement/internal/domain"
)

type saveRepository struct {
	DB DBTX
}

func NewSaveRepository(db DBTX) domain.SaveRepository {
	return &saveRepository{DB: db}
}

func (r *saveRepository) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM event_saves WHERE user_id = $1 AND event_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create is a no-op when the pair is already saved.
func (r *saveRepository) Create(ctx context.Context, s domain.EventSave) error {
	query := `
		INSERT INTO event_saves (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, s.UserID, s.EventID); err != nil {
		if code, _ := pqErrorCode(err); code == codeForeignKeyViolation {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete is a no-op when the pair is not saved.
func (r *saveRepository) Delete(ctx context.Context, s domain.EventSave) error {
	query := `DELETE FROM event_saves WHERE user_id = $1 AND event_id = $2`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, s.EventID)
	return err
}
