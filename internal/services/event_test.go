package services

import (
	"context"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	author = domain.Principal{UserID: 7, Username: "author", Role: domain.RoleUser}
	admin  = domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
	other  = domain.Principal{UserID: 8, Username: "other", Role: domain.RoleUser}
)

func i64(v int64) *int64 { return &v }

func newTestEventService(store *fakeStore) *eventService {
	svc := NewEventService(store, discardFilters(), discardLogger()).(*eventService)
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func performerNames(e *domain.Event) []string {
	names := make([]string, len(e.Performers))
	for i, p := range e.Performers {
		names[i] = p.Name
	}
	return names
}

func TestEventService_Create_JazzNight(t *testing.T) {
	store := newFakeStore()
	store.addVenue(3, "Blue Note")
	store.addPerformer(1, "Alice")
	store.addPerformer(2, "Bob")
	svc := newTestEventService(store)

	e, err := svc.Create(context.Background(), author, domain.EventInsert{
		Title:        "Jazz Night",
		Date:         domain.NewDate(2025, time.January, 1),
		Category:     domain.CategoryMusic,
		VenueID:      i64(3),
		PerformerIDs: []int64{1, 2},
		UserID:       7,
	})
	require.NoError(t, err)
	assert.Greater(t, e.ID, int64(0))
	require.NotNil(t, e.Venue)
	assert.Equal(t, "Blue Note", e.Venue.Name)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, performerNames(e))
	assert.Equal(t, int64(7), *e.UserID)
	assert.Len(t, store.venues, 1)
	assert.Len(t, store.performers, 2)
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	base := func() domain.EventInsert {
		return domain.EventInsert{
			Title:    "Jazz Night",
			Date:     domain.NewDate(2025, time.January, 1),
			Category: domain.CategoryMusic,
			UserID:   7,
		}
	}

	t.Run("new performers reuse existing names", func(t *testing.T) {
		store := newFakeStore()
		store.addPerformer(1, "Alice")
		svc := newTestEventService(store)

		in := base()
		in.NewPerformers = []string{"Alice", "Carol", "Carol "}
		e, err := svc.Create(ctx, author, in)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Alice", "Carol"}, performerNames(e))
		assert.Equal(t, 1, store.performersNamed("Alice"))
		assert.Equal(t, 1, store.performersNamed("Carol"))
	})

	t.Run("new performers win over ids", func(t *testing.T) {
		store := newFakeStore()
		store.addPerformer(1, "Alice")
		store.addPerformer(2, "Bob")
		svc := newTestEventService(store)

		in := base()
		in.PerformerIDs = []int64{2}
		in.NewPerformers = []string{"Alice"}
		e, err := svc.Create(ctx, author, in)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, performerNames(e))
	})

	t.Run("new venue is inserted with the event", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestEventService(store)

		in := base()
		in.NewVenue = &domain.VenueInput{Name: "Jazzhaus", Street: "Hauptstrasse", StreetNumber: "12a", ZipCode: "79104", City: "Freiburg"}
		e, err := svc.Create(ctx, author, in)
		require.NoError(t, err)
		require.NotNil(t, e.Venue)
		assert.Equal(t, "Jazzhaus", e.Venue.Name)
		assert.Equal(t, "79104", e.Venue.Address.ZipCode)
		assert.Len(t, store.venues, 1)
		assert.Empty(t, e.Performers)
	})

	t.Run("missing required fields", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestEventService(store)

		_, err := svc.Create(ctx, author, domain.EventInsert{UserID: 7})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Messages, 3)
		assert.Empty(t, store.events)
	})

	t.Run("cannot create on behalf of another user", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestEventService(store)

		_, err := svc.Create(ctx, other, base())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may create for another user", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestEventService(store)

		e, err := svc.Create(ctx, admin, base())
		require.NoError(t, err)
		assert.Equal(t, int64(7), *e.UserID)
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	upd := func(performers ...string) domain.EventUpdate {
		return domain.EventUpdate{
			Title:      "Jazz Night II",
			Date:       domain.NewDate(2025, time.February, 2),
			Category:   domain.CategoryFestival,
			VenueName:  strp("Blue Note Club"),
			VenueCity:  strp("Hamburg"),
			Performers: performers,
		}
	}

	t.Run("reconciles performers by name", func(t *testing.T) {
		store := newFakeStore()
		store.addVenue(3, "Blue Note")
		store.addPerformer(1, "Alice")
		store.addPerformer(2, "Bob")
		store.addPerformer(5, "Dave")
		store.addEvent(10, "Jazz Night", 7, i64(3), 1, 2)
		svc := newTestEventService(store)

		e, err := svc.Update(ctx, author, 10, upd("Alice", "Dave"))
		require.NoError(t, err)
		assert.Equal(t, "Jazz Night II", e.Title)
		assert.Equal(t, domain.CategoryFestival, e.Category)
		assert.ElementsMatch(t, []string{"Alice", "Dave"}, performerNames(e))
		// Names not attached get a fresh row even if one exists.
		assert.Equal(t, 2, store.performersNamed("Dave"))
		assert.Equal(t, "Blue Note Club", e.Venue.Name)
		assert.Equal(t, "Hamburg", e.Venue.Address.City)
		assert.Equal(t, "Main Street", e.Venue.Address.Street)
	})

	t.Run("nil performers leaves links untouched", func(t *testing.T) {
		store := newFakeStore()
		store.addPerformer(1, "Alice")
		store.addEvent(10, "Jazz Night", 7, nil, 1)
		svc := newTestEventService(store)

		e, err := svc.Update(ctx, author, 10, upd())
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, performerNames(e))
		assert.Nil(t, e.Venue)
	})

	t.Run("empty performers detaches all", func(t *testing.T) {
		store := newFakeStore()
		store.addPerformer(1, "Alice")
		store.addEvent(10, "Jazz Night", 7, nil, 1)
		svc := newTestEventService(store)

		e, err := svc.Update(ctx, author, 10, upd([]string{}...))
		require.NoError(t, err)
		assert.Empty(t, e.Performers)
	})

	t.Run("image is kept unless replaced", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent(10, "Jazz Night", 7, nil)
		store.events[10].ImageURL = strp("/uploads/old.png")
		store.events[10].Price = func() *float64 { v := 12.5; return &v }()
		svc := newTestEventService(store)

		e, err := svc.Update(ctx, author, 10, upd())
		require.NoError(t, err)
		assert.Equal(t, "/uploads/old.png", *e.ImageURL)
		assert.Nil(t, e.Price)

		u := upd()
		u.ImageURL = strp("/uploads/new.png")
		e, err = svc.Update(ctx, author, 10, u)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/new.png", *e.ImageURL)
	})

	t.Run("only author or admin", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent(10, "Jazz Night", 7, nil)
		svc := newTestEventService(store)

		_, err := svc.Update(ctx, other, 10, upd())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "Jazz Night", store.events[10].Title)

		_, err = svc.Update(ctx, admin, 10, upd())
		assert.NoError(t, err)
	})

	t.Run("missing event", func(t *testing.T) {
		svc := newTestEventService(newFakeStore())
		_, err := svc.Update(ctx, admin, 404, upd())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addEvent(10, "Jazz Night", 7, nil)
	svc := newTestEventService(store)

	assert.ErrorIs(t, svc.Delete(ctx, other, 10), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, author, 10))
	assert.Empty(t, store.events)
	assert.ErrorIs(t, svc.Delete(ctx, author, 10), domain.ErrNotFound)
}

func TestEventService_SaveUnsave(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addEvent(10, "Jazz Night", 7, nil)
	svc := newTestEventService(store)

	require.NoError(t, svc.SaveEvent(ctx, 8, 10))
	require.NoError(t, svc.SaveEvent(ctx, 8, 10))
	assert.Len(t, store.saves, 1)

	saved, err := svc.IsSaved(ctx, 8, 10)
	require.NoError(t, err)
	assert.True(t, saved)

	events, total, err := svc.ListSaved(ctx, 8, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(10), events[0].ID)

	require.NoError(t, svc.UnsaveEvent(ctx, 8, 10))
	require.NoError(t, svc.UnsaveEvent(ctx, 8, 10))
	assert.Empty(t, store.saves)

	assert.ErrorIs(t, svc.SaveEvent(ctx, 8, 404), domain.ErrNotFound)
}

func TestEventService_Timeframes(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addEvent(1, "Past", 7, nil)
	store.addEvent(2, "Today", 7, nil)
	store.events[2].Date = domain.NewDate(2025, time.June, 15)
	store.addEvent(3, "Future", 8, nil)
	store.events[3].Date = domain.NewDate(2026, time.March, 1)
	svc := newTestEventService(store)
	p := domain.PaginationParams{Page: 1, PageSize: 20}

	upcoming, _, err := svc.Upcoming(ctx, p)
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)

	past, _, err := svc.Past(ctx, p)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "Past", past[0].Title)

	mine, total, err := svc.ListByUser(ctx, 8, p)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Future", mine[0].Title)
}
