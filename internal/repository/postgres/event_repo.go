package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventmanagement/internal/domain"
)

// eventSelect loads an event together with its venue and address in one row.
const eventSelect = `
	SELECT e.id, e.title, e.description, e.date, e.price, e.category, e.image_url,
	       e.venue_id, e.user_id, e.created_at, e.updated_at,
	       v.name, a.id, a.street, a.street_number, a.zip_code, a.city
	FROM events e
	LEFT JOIN venues v ON v.id = e.venue_id
	LEFT JOIN venue_addresses a ON a.id = v.venue_address_id
`

type eventRepository struct {
	DB DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		date                                     time.Time
		desc, imageURL                           sql.NullString
		price                                    sql.NullFloat64
		venueID, userID, addressID               sql.NullInt64
		venueName, street, number, zipCode, city sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Title, &desc, &date, &price, &e.Category, &imageURL,
		&venueID, &userID, &e.CreatedAt, &e.UpdatedAt,
		&venueName, &addressID, &street, &number, &zipCode, &city,
	)
	if err != nil {
		return nil, err
	}
	e.Date = domain.DateOf(date)
	e.Description = nullStringPtr(desc)
	e.Price = nullFloat64Ptr(price)
	e.ImageURL = nullStringPtr(imageURL)
	e.VenueID = nullInt64Ptr(venueID)
	e.UserID = nullInt64Ptr(userID)
	e.Performers = make([]*domain.Performer, 0)
	if venueID.Valid {
		e.Venue = &domain.Venue{ID: venueID.Int64, Name: venueName.String}
		if addressID.Valid {
			e.Venue.AddressID = addressID.Int64
			e.Venue.Address = &domain.VenueAddress{
				ID:           addressID.Int64,
				Street:       street.String,
				StreetNumber: number.String,
				ZipCode:      zipCode.String,
				City:         city.String,
			}
		}
	}
	return e, nil
}

func mapEventWriteErr(err error) error {
	if code, _ := pqErrorCode(err); code == codeForeignKeyViolation {
		return domain.NewValidationError("referenced venue, user or performer does not exist")
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, price, category, image_url, venue_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Title, e.Description, e.Date.Time, e.Price, e.Category,
		e.ImageURL, e.VenueID, e.UserID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return mapEventWriteErr(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	if err := r.loadPerformers(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// loadPerformers fills Performers for all events with a single query.
func (r *eventRepository) loadPerformers(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Event, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	query := `
		SELECT ep.event_id, p.id, p.name
		FROM events_performers ep
		JOIN performers p ON p.id = ep.performer_id
		WHERE ep.event_id = ANY($1)
		ORDER BY ep.event_id, p.id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID int64
		p := &domain.Performer{}
		if err := rows.Scan(&eventID, &p.ID, &p.Name); err != nil {
			return err
		}
		if e, ok := byID[eventID]; ok {
			e.Performers = append(e.Performers, p)
		}
	}
	return rows.Err()
}

// buildEventWhere returns the WHERE clause for f (empty when f is zero) and its args.
func buildEventWhere(f domain.EventFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Title != "" {
		add("e.title ILIKE '%%' || $%d || '%%'", f.Title)
	}
	if f.Category != "" {
		add("e.category = $%d", f.Category)
	}
	if f.VenueID != nil {
		add("e.venue_id = $%d", *f.VenueID)
	}
	if f.VenueName != "" {
		add("v.name = $%d", f.VenueName)
	}
	if f.Performer != "" {
		add(`EXISTS (
			SELECT 1 FROM events_performers ep JOIN performers p ON p.id = ep.performer_id
			WHERE ep.event_id = e.id AND p.name = $%d)`, f.Performer)
	}
	if f.Date != nil {
		add("e.date = $%d", f.Date.Time)
	}
	if f.UserID != nil {
		add("e.user_id = $%d", *f.UserID)
	}
	if f.SavedBy != nil {
		add("EXISTS (SELECT 1 FROM event_saves s WHERE s.event_id = e.id AND s.user_id = $%d)", *f.SavedBy)
	}
	switch f.Timeframe {
	case domain.TimeframeUpcoming:
		add("e.date >= $%d", f.Today.Time)
	case domain.TimeframePast:
		add("e.date < $%d", f.Today.Time)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	where, args := buildEventWhere(f)

	countQuery := `SELECT COUNT(*) FROM events e LEFT JOIN venues v ON v.id = e.venue_id` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY e.date DESC, e.id DESC"
	if f.Timeframe == domain.TimeframeUpcoming {
		order = " ORDER BY e.date ASC, e.id ASC"
	}
	n := len(args)
	query := eventSelect + where + order + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limitArg(p.Limit()), p.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadPerformers(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, price = $4, category = $5,
		    image_url = $6, venue_id = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query, e.Title, e.Description, e.Date.Time, e.Price, e.Category,
		e.ImageURL, e.VenueID, e.UpdatedAt, e.ID)
	if err != nil {
		return mapEventWriteErr(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) AttachPerformer(ctx context.Context, eventID, performerID int64) error {
	query := `
		INSERT INTO events_performers (event_id, performer_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, performer_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, eventID, performerID); err != nil {
		return mapEventWriteErr(err)
	}
	return nil
}

func (r *eventRepository) DetachPerformer(ctx context.Context, eventID, performerID int64) error {
	query := `DELETE FROM events_performers WHERE event_id = $1 AND performer_id = $2`
	_, err := r.DB.ExecContext(ctx, query, eventID, performerID)
	return err
}

func (r *eventRepository) ListDates(ctx context.Context) ([]domain.Date, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT date FROM events ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := make([]domain.Date, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		dates = append(dates, domain.DateOf(t))
	}
	return dates, rows.Err()
}
