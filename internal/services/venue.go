package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventmanagement/internal/domain"
)

type venueService struct {
	uow     domain.UnitOfWork
	filters domain.FilterInvalidator
	logger  *slog.Logger
}

// NewVenueService creates a VenueService. Every committed write drops the
// cached venue filter options.
func NewVenueService(uow domain.UnitOfWork, filters domain.FilterInvalidator, logger *slog.Logger) domain.VenueService {
	return &venueService{uow: uow, filters: filters, logger: logger}
}

func trimVenueInput(in domain.VenueInput) domain.VenueInput {
	return domain.VenueInput{
		Name:         strings.TrimSpace(in.Name),
		Street:       strings.TrimSpace(in.Street),
		StreetNumber: strings.TrimSpace(in.StreetNumber),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		City:         strings.TrimSpace(in.City),
	}
}

func (s *venueService) Create(ctx context.Context, in domain.VenueInput) (*domain.Venue, error) {
	in = trimVenueInput(in)
	if in.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	v := domain.NewVenue(in)
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		taken, err := exists(tx.Venues().GetByName(ctx, in.Name))
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateVenueName
		}
		return tx.Venues().Create(ctx, v)
	})
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.filters.Invalidate(ctx, domain.FilterVenue)
	s.logger.InfoContext(ctx, "venue created", "venue_id", v.ID, "name", v.Name)
	return v, nil
}

func (s *venueService) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	v, err := s.uow.Venues().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (s *venueService) List(ctx context.Context) ([]*domain.Venue, error) {
	venues, err := s.uow.Venues().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Update overwrites the venue name and its address in place.
func (s *venueService) Update(ctx context.Context, id int64, in domain.VenueInput) (*domain.Venue, error) {
	in = trimVenueInput(in)
	if in.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	var updated *domain.Venue
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		v, err := tx.Venues().GetByID(ctx, id)
		if err != nil {
			return err
		}
		other, err := tx.Venues().GetByName(ctx, in.Name)
		switch {
		case err == nil && other.ID != id:
			return domain.ErrDuplicateVenueName
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		v.Name = in.Name
		addrID := v.AddressID
		if v.Address != nil {
			addrID = v.Address.ID
		}
		v.Address = &domain.VenueAddress{
			ID:           addrID,
			Street:       in.Street,
			StreetNumber: in.StreetNumber,
			ZipCode:      in.ZipCode,
			City:         in.City,
		}
		if err := tx.Venues().Update(ctx, v); err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	s.filters.Invalidate(ctx, domain.FilterVenue)
	return updated, nil
}

// Delete removes the venue and its address. Events at the venue keep a null venue.
func (s *venueService) Delete(ctx context.Context, id int64) error {
	if err := s.uow.Venues().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	s.filters.Invalidate(ctx, domain.FilterVenue)
	s.logger.InfoContext(ctx, "venue deleted", "venue_id", id)
	return nil
}

func (s *venueService) IsNameTaken(ctx context.Context, name string) (bool, error) {
	return exists(s.uow.Venues().GetByName(ctx, strings.TrimSpace(name)))
}
