package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventmanagement/internal/domain"
)

type performerRepository struct {
	DB DBTX
}

func NewPerformerRepository(db DBTX) domain.PerformerRepository {
	return &performerRepository{DB: db}
}

func (r *performerRepository) Create(ctx context.Context, p *domain.Performer) error {
	query := `INSERT INTO performers (name) VALUES ($1) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, p.Name).Scan(&p.ID)
}

func (r *performerRepository) getOne(ctx context.Context, query string, arg any) (*domain.Performer, error) {
	p := &domain.Performer{}
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPerformerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *performerRepository) GetByID(ctx context.Context, id int64) (*domain.Performer, error) {
	return r.getOne(ctx, `SELECT id, name FROM performers WHERE id = $1`, id)
}

// GetByName returns the oldest performer with exactly this name; names are not unique.
func (r *performerRepository) GetByName(ctx context.Context, name string) (*domain.Performer, error) {
	return r.getOne(ctx, `SELECT id, name FROM performers WHERE name = $1 ORDER BY id LIMIT 1`, name)
}

func (r *performerRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Performer, error) {
	if len(ids) == 0 {
		return []*domain.Performer{}, nil
	}
	return r.list(ctx, `SELECT id, name FROM performers WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
}

func (r *performerRepository) List(ctx context.Context, nameContains string) ([]*domain.Performer, error) {
	if nameContains == "" {
		return r.list(ctx, `SELECT id, name FROM performers ORDER BY name, id`)
	}
	return r.list(ctx, `SELECT id, name FROM performers WHERE name ILIKE '%' || $1 || '%' ORDER BY name, id`, nameContains)
}

func (r *performerRepository) ListNames(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, r.DB, `SELECT DISTINCT name FROM performers ORDER BY name`)
}

func (r *performerRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Performer, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	performers := make([]*domain.Performer, 0)
	for rows.Next() {
		p := &domain.Performer{}
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		performers = append(performers, p)
	}
	return performers, rows.Err()
}
