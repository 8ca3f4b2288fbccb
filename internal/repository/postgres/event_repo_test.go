package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{
	"id", "title", "description", "date", "price", "category", "image_url",
	"venue_id", "user_id", "created_at", "updated_at",
	"name", "id", "street", "street_number", "zip_code", "city",
}

func strPtr(s string) *string       { return &s }
func int64Ptr(n int64) *int64       { return &n }
func float64Ptr(f float64) *float64 { return &f }

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:     "Jazz Night",
				Date:      domain.NewDate(2025, 1, 1),
				Price:     float64Ptr(20),
				Category:  domain.CategoryMusic,
				VenueID:   int64Ptr(3),
				UserID:    int64Ptr(7),
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, price, category, image_url, venue_id, user_id`).
					WithArgs("Jazz Night", nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 20.0, "Music", nil, int64(3), int64(7), created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
			},
			wantID: 42,
		},
		{
			name:  "missing venue reported as invalid input",
			event: &domain.Event{Title: "Jazz Night", Category: "Music", VenueID: int64Ptr(999)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:  "db error",
			event: &domain.Event{Title: "Conf", Category: "Other"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "with venue and performers",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events e\s+LEFT JOIN venues v`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(
						int64(1), "Jazz Night", "smooth", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 12.5, "Music", nil,
						int64(3), int64(7), created, created,
						"Blue Note", int64(30), "Main", "12", "10431", "Athens",
					))
				mock.ExpectQuery(`FROM events_performers ep`).
					WithArgs(sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"event_id", "id", "name"}).
						AddRow(int64(1), int64(1), "Alice").
						AddRow(int64(1), int64(2), "Bob"))
			},
			want: &domain.Event{
				ID:          1,
				Title:       "Jazz Night",
				Description: strPtr("smooth"),
				Date:        domain.NewDate(2025, 1, 1),
				Price:       float64Ptr(12.5),
				Category:    "Music",
				VenueID:     int64Ptr(3),
				UserID:      int64Ptr(7),
				Venue: &domain.Venue{
					ID: 3, Name: "Blue Note", AddressID: 30,
					Address: &domain.VenueAddress{ID: 30, Street: "Main", StreetNumber: "12", ZipCode: "10431", City: "Athens"},
				},
				Performers: []*domain.Performer{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
				CreatedAt:  created,
				UpdatedAt:  created,
			},
		},
		{
			name: "without venue",
			id:   2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events e`).
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows(eventCols).AddRow(
						int64(2), "Open Mic", nil, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), nil, "Comedy", "/uploads/a.png",
						nil, nil, created, created,
						nil, nil, nil, nil, nil, nil,
					))
				mock.ExpectQuery(`FROM events_performers ep`).
					WithArgs(sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"event_id", "id", "name"}))
			},
			want: &domain.Event{
				ID:         2,
				Title:      "Open Mic",
				Date:       domain.NewDate(2025, 3, 4),
				Category:   "Comedy",
				ImageURL:   strPtr("/uploads/a.png"),
				Performers: []*domain.Performer{},
				CreatedAt:  created,
				UpdatedAt:  created,
			},
		},
		{
			name: "not found",
			id:   404,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events e`).
					WithArgs(int64(404)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	today := domain.NewDate(2025, 6, 1)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events e LEFT JOIN venues v ON v.id = e.venue_id WHERE e.category = \$1 AND EXISTS`).
		WithArgs("Music", "Alice", today.Time).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`e.date >= \$3 ORDER BY e.date ASC, e.id ASC LIMIT \$4 OFFSET \$5`).
		WithArgs("Music", "Alice", today.Time, 10, 0).
		WillReturnRows(sqlmock.NewRows(eventCols).AddRow(
			int64(5), "Summer Jam", nil, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), nil, "Music", nil,
			nil, int64(7), created, created,
			nil, nil, nil, nil, nil, nil,
		))
	mock.ExpectQuery(`FROM events_performers ep`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "id", "name"}).AddRow(int64(5), int64(1), "Alice"))

	repo := NewEventRepository(db)
	events, total, err := repo.List(ctx, domain.EventFilter{
		Category:  "Music",
		Performer: "Alice",
		Timeframe: domain.TimeframeUpcoming,
		Today:     today,
	}, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, events, 1)
	require.Equal(t, "Summer Jam", events[0].Title)
	require.Equal(t, []*domain.Performer{{ID: 1, Name: "Alice"}}, events[0].Performers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildEventWhere(t *testing.T) {
	venueID := int64(3)
	saver := int64(9)
	tests := []struct {
		name      string
		filter    domain.EventFilter
		wantWhere string
		wantArgs  int
	}{
		{"empty", domain.EventFilter{}, "", 0},
		{"title", domain.EventFilter{Title: "jazz"}, " WHERE e.title ILIKE '%' || $1 || '%'", 1},
		{"venue and saved", domain.EventFilter{VenueID: &venueID, SavedBy: &saver},
			" WHERE e.venue_id = $1 AND EXISTS (SELECT 1 FROM event_saves s WHERE s.event_id = e.id AND s.user_id = $2)", 2},
		{"past", domain.EventFilter{Timeframe: domain.TimeframePast, Today: domain.NewDate(2025, 1, 1)}, " WHERE e.date < $1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildEventWhere(tt.filter)
			require.Equal(t, tt.wantWhere, where)
			require.Len(t, args, tt.wantArgs)
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE events`).
		WithArgs("Jazz Night II", nil, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), nil, "Music", "/uploads/x.png", int64(3), updated, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE events`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db)
	e := &domain.Event{
		ID: 1, Title: "Jazz Night II", Date: domain.NewDate(2025, 2, 2), Category: "Music",
		ImageURL: strPtr("/uploads/x.png"), VenueID: int64Ptr(3), UpdatedAt: updated,
	}
	require.NoError(t, repo.Update(ctx, e))
	require.ErrorIs(t, repo.Update(ctx, &domain.Event{ID: 2}), domain.ErrEventNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Performers(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO events_performers \(event_id, performer_id\)`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM events_performers WHERE event_id = \$1 AND performer_id = \$2`).
		WithArgs(int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEventRepository(db)
	require.NoError(t, repo.AttachPerformer(ctx, 1, 2))
	require.NoError(t, repo.DetachPerformer(ctx, 1, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_DeleteAndDates(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT DISTINCT date FROM events ORDER BY date`).
		WillReturnRows(sqlmock.NewRows([]string{"date"}).
			AddRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))

	repo := NewEventRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, 9), domain.ErrEventNotFound)
	dates, err := repo.ListDates(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Date{domain.NewDate(2025, 1, 1), domain.NewDate(2025, 2, 1)}, dates)
	require.NoError(t, mock.ExpectationsWereMet())
}
