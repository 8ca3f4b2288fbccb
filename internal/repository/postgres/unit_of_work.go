package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventmanagement/internal/domain"
)

type unitOfWork struct {
	db   *sql.DB
	q    DBTX
	inTx bool
}

// NewUnitOfWork returns a UnitOfWork whose repositories run on db until
// Transaction hands out a transaction-bound copy.
func NewUnitOfWork(db *sql.DB) domain.UnitOfWork {
	return &unitOfWork{db: db, q: db}
}

func (u *unitOfWork) Users() domain.UserRepository           { return NewUserRepository(u.q) }
func (u *unitOfWork) Events() domain.EventRepository         { return NewEventRepository(u.q) }
func (u *unitOfWork) Venues() domain.VenueRepository         { return NewVenueRepository(u.q) }
func (u *unitOfWork) Performers() domain.PerformerRepository { return NewPerformerRepository(u.q) }
func (u *unitOfWork) Saves() domain.SaveRepository           { return NewSaveRepository(u.q) }

// Transaction nests by reusing the open transaction.
func (u *unitOfWork) Transaction(ctx context.Context, fn func(tx domain.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(&unitOfWork{db: u.db, q: tx, inTx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
