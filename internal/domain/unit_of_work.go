package domain

import "context"

// UnitOfWork groups the repositories behind one transaction boundary.
// Transaction runs fn with a UnitOfWork whose repositories share a single
// transaction; it commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Users() UserRepository
	Events() EventRepository
	Venues() VenueRepository
	Performers() PerformerRepository
	Saves() SaveRepository
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error
}
