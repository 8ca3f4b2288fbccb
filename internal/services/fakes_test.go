package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func discardFilters() domain.FilterInvalidator {
	return NewFilterInvalidator(newFakeCache(), discardLogger())
}

// fakeStore is an in-memory UnitOfWork backing every repository.
type fakeStore struct {
	users      map[int64]*domain.User
	events     map[int64]*domain.Event
	venues     map[int64]*domain.Venue
	performers map[int64]*domain.Performer
	links      map[int64][]int64
	saves      map[domain.EventSave]struct{}
	nextID     int64
	txCount    int
	failCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[int64]*domain.User),
		events:     make(map[int64]*domain.Event),
		venues:     make(map[int64]*domain.Venue),
		performers: make(map[int64]*domain.Performer),
		links:      make(map[int64][]int64),
		saves:      make(map[domain.EventSave]struct{}),
		nextID:     100,
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Users() domain.UserRepository           { return fakeUsers{f} }
func (f *fakeStore) Events() domain.EventRepository         { return fakeEvents{f} }
func (f *fakeStore) Venues() domain.VenueRepository         { return fakeVenues{f} }
func (f *fakeStore) Performers() domain.PerformerRepository { return fakePerformers{f} }
func (f *fakeStore) Saves() domain.SaveRepository           { return fakeSaves{f} }

func (f *fakeStore) Transaction(ctx context.Context, fn func(tx domain.UnitOfWork) error) error {
	f.txCount++
	return fn(f)
}

func (f *fakeStore) addVenue(id int64, name string) *domain.Venue {
	v := &domain.Venue{ID: id, Name: name, AddressID: id, Address: &domain.VenueAddress{
		ID: id, Street: "Main Street", StreetNumber: "1", ZipCode: "10115", City: "Berlin",
	}}
	f.venues[id] = v
	return v
}

func (f *fakeStore) addPerformer(id int64, name string) *domain.Performer {
	p := &domain.Performer{ID: id, Name: name}
	f.performers[id] = p
	return p
}

func (f *fakeStore) addEvent(id int64, title string, userID int64, venueID *int64, performerIDs ...int64) {
	f.events[id] = &domain.Event{ID: id, Title: title, Category: domain.CategoryMusic, Date: domain.NewDate(2025, time.January, 1), UserID: &userID, VenueID: venueID}
	f.links[id] = performerIDs
}

func (f *fakeStore) performersNamed(name string) int {
	n := 0
	for _, p := range f.performers {
		if p.Name == name {
			n++
		}
	}
	return n
}

type fakeUsers struct{ f *fakeStore }

func (r fakeUsers) Create(ctx context.Context, u *domain.User) error {
	if r.f.failCreate != nil {
		return r.f.failCreate
	}
	u.ID = r.f.id()
	cp := *u
	r.f.users[u.ID] = &cp
	return nil
}

func (r fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r fakeUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == strings.ToLower(email) })
}

func (r fakeUsers) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.Username == identifier || u.Email == strings.ToLower(identifier)
	})
}

func (r fakeUsers) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	out := make([]*domain.User, 0, len(r.f.users))
	for _, u := range r.f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r fakeUsers) Update(ctx context.Context, u *domain.User) error {
	if _, ok := r.f.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.f.users[u.ID] = &cp
	return nil
}

func (r fakeUsers) Delete(ctx context.Context, id int64) error {
	delete(r.f.users, id)
	for s := range r.f.saves {
		if s.UserID == id {
			delete(r.f.saves, s)
		}
	}
	return nil
}

type fakeEvents struct{ f *fakeStore }

func (r fakeEvents) Create(ctx context.Context, e *domain.Event) error {
	e.ID = r.f.id()
	cp := *e
	r.f.events[e.ID] = &cp
	return nil
}

func (r fakeEvents) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := r.f.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	cp.Venue = nil
	if cp.VenueID != nil {
		if v, ok := r.f.venues[*cp.VenueID]; ok {
			vc := *v
			ac := *v.Address
			vc.Address = &ac
			cp.Venue = &vc
		}
	}
	cp.Performers = []*domain.Performer{}
	for _, pid := range r.f.links[id] {
		if p, ok := r.f.performers[pid]; ok {
			pc := *p
			cp.Performers = append(cp.Performers, &pc)
		}
	}
	return &cp, nil
}

func (r fakeEvents) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := r.f.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	cp := *e
	r.f.events[e.ID] = &cp
	return nil
}

func (r fakeEvents) Delete(ctx context.Context, id int64) error {
	if _, ok := r.f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.f.events, id)
	delete(r.f.links, id)
	return nil
}

func (r fakeEvents) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for id, e := range r.f.events {
		if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
			continue
		}
		if f.SavedBy != nil {
			if _, ok := r.f.saves[domain.EventSave{UserID: *f.SavedBy, EventID: id}]; !ok {
				continue
			}
		}
		switch f.Timeframe {
		case domain.TimeframeUpcoming:
			if e.Date.Before(f.Today.Time) {
				continue
			}
		case domain.TimeframePast:
			if !e.Date.Before(f.Today.Time) {
				continue
			}
		}
		full, _ := r.GetByID(ctx, id)
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r fakeEvents) AttachPerformer(ctx context.Context, eventID, performerID int64) error {
	for _, id := range r.f.links[eventID] {
		if id == performerID {
			return nil
		}
	}
	r.f.links[eventID] = append(r.f.links[eventID], performerID)
	return nil
}

func (r fakeEvents) DetachPerformer(ctx context.Context, eventID, performerID int64) error {
	ids := r.f.links[eventID][:0]
	for _, id := range r.f.links[eventID] {
		if id != performerID {
			ids = append(ids, id)
		}
	}
	r.f.links[eventID] = ids
	return nil
}

func (r fakeEvents) ListDates(ctx context.Context) ([]domain.Date, error) {
	seen := make(map[domain.Date]struct{})
	var out []domain.Date
	for _, e := range r.f.events {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		out = append(out, e.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j].Time) })
	return out, nil
}

type fakeVenues struct{ f *fakeStore }

func (r fakeVenues) Create(ctx context.Context, v *domain.Venue) error {
	if v.Address == nil {
		return domain.NewValidationError("venue address is required")
	}
	v.ID = r.f.id()
	v.Address.ID = r.f.id()
	v.AddressID = v.Address.ID
	cp := *v
	ac := *v.Address
	cp.Address = &ac
	r.f.venues[v.ID] = &cp
	return nil
}

func (r fakeVenues) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	v, ok := r.f.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	cp := *v
	ac := *v.Address
	cp.Address = &ac
	return &cp, nil
}

func (r fakeVenues) GetByName(ctx context.Context, name string) (*domain.Venue, error) {
	for id, v := range r.f.venues {
		if strings.EqualFold(v.Name, name) {
			return r.GetByID(ctx, id)
		}
	}
	return nil, domain.ErrVenueNotFound
}

func (r fakeVenues) List(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(r.f.venues))
	for id := range r.f.venues {
		v, _ := r.GetByID(ctx, id)
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeVenues) Update(ctx context.Context, v *domain.Venue) error {
	if _, ok := r.f.venues[v.ID]; !ok {
		return domain.ErrVenueNotFound
	}
	cp := *v
	ac := *v.Address
	cp.Address = &ac
	r.f.venues[v.ID] = &cp
	return nil
}

func (r fakeVenues) Delete(ctx context.Context, id int64) error {
	if _, ok := r.f.venues[id]; !ok {
		return domain.ErrVenueNotFound
	}
	delete(r.f.venues, id)
	for _, e := range r.f.events {
		if e.VenueID != nil && *e.VenueID == id {
			e.VenueID = nil
		}
	}
	return nil
}

func (r fakeVenues) ListNames(ctx context.Context) ([]string, error) {
	var out []string
	for _, v := range r.f.venues {
		out = append(out, v.Name)
	}
	sort.Strings(out)
	return out, nil
}

type fakePerformers struct{ f *fakeStore }

func (r fakePerformers) Create(ctx context.Context, p *domain.Performer) error {
	p.ID = r.f.id()
	cp := *p
	r.f.performers[p.ID] = &cp
	return nil
}

func (r fakePerformers) GetByID(ctx context.Context, id int64) (*domain.Performer, error) {
	p, ok := r.f.performers[id]
	if !ok {
		return nil, domain.ErrPerformerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePerformers) GetByName(ctx context.Context, name string) (*domain.Performer, error) {
	var found *domain.Performer
	for _, p := range r.f.performers {
		if p.Name == name && (found == nil || p.ID < found.ID) {
			found = p
		}
	}
	if found == nil {
		return nil, domain.ErrPerformerNotFound
	}
	cp := *found
	return &cp, nil
}

func (r fakePerformers) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Performer, error) {
	out := []*domain.Performer{}
	for _, id := range ids {
		if p, err := r.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePerformers) List(ctx context.Context, nameContains string) ([]*domain.Performer, error) {
	var out []*domain.Performer
	for _, p := range r.f.performers {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(nameContains)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePerformers) ListNames(ctx context.Context) ([]string, error) {
	var out []string
	for _, p := range r.f.performers {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out, nil
}

type fakeSaves struct{ f *fakeStore }

func (r fakeSaves) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	_, ok := r.f.saves[domain.EventSave{UserID: userID, EventID: eventID}]
	return ok, nil
}

func (r fakeSaves) Create(ctx context.Context, s domain.EventSave) error {
	if _, ok := r.f.events[s.EventID]; !ok {
		return domain.ErrNotFound
	}
	r.f.saves[s] = struct{}{}
	return nil
}

func (r fakeSaves) Delete(ctx context.Context, s domain.EventSave) error {
	delete(r.f.saves, s)
	return nil
}

// fakeCache is an in-memory domain.Cache; values are kept as-is.
type fakeCache struct {
	data      map[string]any
	getErr    error
	deleteErr error
	gets      int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]any)} }

func (c *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	out, ok := dest.(*[]string)
	if !ok {
		return false, errors.New("unexpected destination type")
	}
	*out = v.([]string)
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
