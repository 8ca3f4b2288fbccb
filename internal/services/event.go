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

type eventService struct {
	uow     domain.UnitOfWork
	filters domain.FilterInvalidator
	logger  *slog.Logger
	now     func() time.Time
}

// NewEventService creates an EventService running its mutations through uow.
// Cached filter options touched by a committed write are dropped via filters.
func NewEventService(uow domain.UnitOfWork, filters domain.FilterInvalidator, logger *slog.Logger) domain.EventService {
	return &eventService{uow: uow, filters: filters, logger: logger, now: time.Now}
}

func validateEventInsert(in domain.EventInsert) error {
	var errs []string
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "title is required")
	}
	if in.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, "category is required")
	}
	if len(errs) > 0 {
		return domain.NewValidationError(errs...)
	}
	return nil
}

// Create inserts the event, a new venue if one is embedded, and links performers.
// Named performers are reused when a performer with the exact name exists.
func (s *eventService) Create(ctx context.Context, actor domain.Principal, in domain.EventInsert) (*domain.Event, error) {
	if !actor.CanActOn(&in.UserID) {
		return nil, domain.ErrForbidden
	}
	if err := validateEventInsert(in); err != nil {
		return nil, err
	}
	var created *domain.Event
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		now := s.now()
		userID := in.UserID
		e := &domain.Event{
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Date:        in.Date,
			Price:       in.Price,
			Category:    in.Category,
			ImageURL:    in.ImageURL,
			UserID:      &userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		switch {
		case in.NewVenue != nil:
			v := domain.NewVenue(*in.NewVenue)
			if err := tx.Venues().Create(ctx, v); err != nil {
				return fmt.Errorf("create venue: %w", err)
			}
			e.VenueID = &v.ID
		case in.VenueID != nil:
			venueID := *in.VenueID
			e.VenueID = &venueID
		}

		performers, err := s.resolvePerformers(ctx, tx.Performers(), in)
		if err != nil {
			return err
		}
		if err := tx.Events().Create(ctx, e); err != nil {
			return err
		}
		for _, p := range performers {
			if err := tx.Events().AttachPerformer(ctx, e.ID, p.ID); err != nil {
				return fmt.Errorf("attach performer %d: %w", p.ID, err)
			}
		}
		created, err = tx.Events().GetByID(ctx, e.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	stale := []string{domain.FilterDate}
	if in.NewVenue != nil {
		stale = append(stale, domain.FilterVenue)
	}
	if len(in.NewPerformers) > 0 {
		stale = append(stale, domain.FilterPerformer)
	}
	s.filters.Invalidate(ctx, stale...)
	s.logger.InfoContext(ctx, "event created", "event_id", created.ID, "user_id", in.UserID)
	return created, nil
}

// resolvePerformers honors NewPerformers first and falls back to PerformerIDs.
func (s *eventService) resolvePerformers(ctx context.Context, repo domain.PerformerRepository, in domain.EventInsert) ([]*domain.Performer, error) {
	if len(in.NewPerformers) > 0 {
		performers := make([]*domain.Performer, 0, len(in.NewPerformers))
		seen := make(map[string]struct{}, len(in.NewPerformers))
		for _, name := range in.NewPerformers {
			name = strings.TrimSpace(name)
			if _, dup := seen[name]; dup || name == "" {
				continue
			}
			seen[name] = struct{}{}
			p, err := repo.GetByName(ctx, name)
			if errors.Is(err, domain.ErrNotFound) {
				p = &domain.Performer{Name: name}
				err = repo.Create(ctx, p)
			}
			if err != nil {
				return nil, fmt.Errorf("resolve performer %q: %w", name, err)
			}
			performers = append(performers, p)
		}
		return performers, nil
	}
	if len(in.PerformerIDs) > 0 {
		performers, err := repo.GetByIDs(ctx, uniqueIDs(in.PerformerIDs))
		if err != nil {
			return nil, fmt.Errorf("load performers: %w", err)
		}
		return performers, nil
	}
	return nil, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.uow.Events().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.Timeframe != domain.TimeframeAny && f.Today.IsZero() {
		f.Today = domain.DateOf(s.now())
	}
	events, total, err := s.uow.Events().List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) Upcoming(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.List(ctx, domain.EventFilter{Timeframe: domain.TimeframeUpcoming}, p)
}

func (s *eventService) Past(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.List(ctx, domain.EventFilter{Timeframe: domain.TimeframePast}, p)
}

func (s *eventService) ListByUser(ctx context.Context, userID int64, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.List(ctx, domain.EventFilter{UserID: &userID}, p)
}

// Update overwrites the event scalars, edits the attached venue in place and
// reconciles performers by name. Names not yet attached always get a new
// performer row.
func (s *eventService) Update(ctx context.Context, actor domain.Principal, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	var updated *domain.Event
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		e, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanActOn(e.UserID) {
			return domain.ErrForbidden
		}

		e.Title = strings.TrimSpace(upd.Title)
		e.Description = upd.Description
		e.Date = upd.Date
		e.Category = upd.Category
		e.Price = upd.Price
		if upd.ImageURL != nil {
			e.ImageURL = upd.ImageURL
		}
		e.UpdatedAt = s.now()
		if err := tx.Events().Update(ctx, e); err != nil {
			return err
		}

		if e.Venue != nil {
			applyVenueFields(e.Venue, upd)
			if err := tx.Venues().Update(ctx, e.Venue); err != nil {
				return fmt.Errorf("update venue: %w", err)
			}
		}

		if upd.Performers != nil {
			if err := reconcilePerformers(ctx, tx, e, upd.Performers); err != nil {
				return err
			}
		}
		updated, err = tx.Events().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	stale := []string{domain.FilterDate}
	if upd.VenueName != nil {
		stale = append(stale, domain.FilterVenue)
	}
	if upd.Performers != nil {
		stale = append(stale, domain.FilterPerformer)
	}
	s.filters.Invalidate(ctx, stale...)
	return updated, nil
}

// applyVenueFields copies the supplied venue fields; nil fields keep the stored value.
func applyVenueFields(v *domain.Venue, upd domain.EventUpdate) {
	if upd.VenueName != nil {
		v.Name = *upd.VenueName
	}
	a := v.Address
	if a == nil {
		return
	}
	if upd.VenueStreet != nil {
		a.Street = *upd.VenueStreet
	}
	if upd.VenueStreetNumber != nil {
		a.StreetNumber = *upd.VenueStreetNumber
	}
	if upd.VenueZipCode != nil {
		a.ZipCode = *upd.VenueZipCode
	}
	if upd.VenueCity != nil {
		a.City = *upd.VenueCity
	}
}

func reconcilePerformers(ctx context.Context, tx domain.UnitOfWork, e *domain.Event, names []string) error {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.TrimSpace(n)] = struct{}{}
	}
	for _, p := range e.Performers {
		if _, keep := wanted[p.Name]; keep {
			continue
		}
		if err := tx.Events().DetachPerformer(ctx, e.ID, p.ID); err != nil {
			return fmt.Errorf("detach performer %d: %w", p.ID, err)
		}
	}
	added := make(map[string]struct{})
	for _, n := range names {
		name := strings.TrimSpace(n)
		if name == "" || e.HasPerformerNamed(name) {
			continue
		}
		if _, done := added[name]; done {
			continue
		}
		p := &domain.Performer{Name: name}
		if err := tx.Performers().Create(ctx, p); err != nil {
			return fmt.Errorf("create performer %q: %w", name, err)
		}
		if err := tx.Events().AttachPerformer(ctx, e.ID, p.ID); err != nil {
			return fmt.Errorf("attach performer %d: %w", p.ID, err)
		}
		added[name] = struct{}{}
	}
	return nil
}

func (s *eventService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		e, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanActOn(e.UserID) {
			return domain.ErrForbidden
		}
		return tx.Events().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.filters.Invalidate(ctx, domain.FilterDate)
	return nil
}

// SaveEvent bookmarks the event for the user. Saving twice leaves one bookmark.
func (s *eventService) SaveEvent(ctx context.Context, userID, eventID int64) error {
	err := s.uow.Transaction(ctx, func(tx domain.UnitOfWork) error {
		if _, err := tx.Events().GetByID(ctx, eventID); err != nil {
			return err
		}
		exists, err := tx.Saves().Exists(ctx, userID, eventID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return tx.Saves().Create(ctx, domain.EventSave{UserID: userID, EventID: eventID})
	})
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

// UnsaveEvent removes the bookmark if present.
func (s *eventService) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	if err := s.uow.Saves().Delete(ctx, domain.EventSave{UserID: userID, EventID: eventID}); err != nil {
		return fmt.Errorf("unsave event: %w", err)
	}
	return nil
}

func (s *eventService) IsSaved(ctx context.Context, userID, eventID int64) (bool, error) {
	saved, err := s.uow.Saves().Exists(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("check saved event: %w", err)
	}
	return saved, nil
}

func (s *eventService) ListSaved(ctx context.Context, userID int64, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.List(ctx, domain.EventFilter{SavedBy: &userID}, p)
}
