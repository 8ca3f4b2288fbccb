package domain

import "context"

// Performer is an artist or act appearing at events.
// swagger:model Performer
type Performer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PerformerRepository defines the interface for performer storage.
// GetByName matches the exact name and returns the first row when names repeat.
type PerformerRepository interface {
	Create(ctx context.Context, p *Performer) error
	GetByID(ctx context.Context, id int64) (*Performer, error)
	GetByName(ctx context.Context, name string) (*Performer, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Performer, error)
	List(ctx context.Context, nameContains string) ([]*Performer, error)
	ListNames(ctx context.Context) ([]string, error)
}

// PerformerService defines read access to performers.
type PerformerService interface {
	Get(ctx context.Context, id int64) (*Performer, error)
	List(ctx context.Context, nameContains string) ([]*Performer, error)
}
