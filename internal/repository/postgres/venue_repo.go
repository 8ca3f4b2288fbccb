package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const venueSelect = `
	SELECT v.id, v.name, v.venue_address_id, a.street, a.street_number, a.zip_code, a.city
	FROM venues v
	JOIN venue_addresses a ON a.id = v.venue_address_id
`

type venueRepository struct {
	DB DBTX
}

func NewVenueRepository(db DBTX) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{Address: &domain.VenueAddress{}}
	err := row.Scan(&v.ID, &v.Name, &v.AddressID, &v.Address.Street, &v.Address.StreetNumber,
		&v.Address.ZipCode, &v.Address.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, err
	}
	v.Address.ID = v.AddressID
	return v, nil
}

// Create inserts the address and then the venue. Callers run it inside a
// transaction so both rows commit together.
func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	if v.Address == nil {
		return domain.NewValidationError("venue address is required")
	}
	addrQuery := `
		INSERT INTO venue_addresses (street, street_number, zip_code, city)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	a := v.Address
	if err := r.DB.QueryRowContext(ctx, addrQuery, a.Street, a.StreetNumber, a.ZipCode, a.City).Scan(&a.ID); err != nil {
		return err
	}
	v.AddressID = a.ID
	venueQuery := `
		INSERT INTO venues (name, venue_address_id)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, venueQuery, v.Name, v.AddressID).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx, venueSelect+` WHERE v.id = $1`, id))
}

func (r *venueRepository) GetByName(ctx context.Context, name string) (*domain.Venue, error) {
	query := venueSelect + ` WHERE LOWER(v.name) = LOWER($1) ORDER BY v.id LIMIT 1`
	return scanVenue(r.DB.QueryRowContext(ctx, query, name))
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, venueSelect+` ORDER BY v.name, v.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// Update overwrites the venue name and its address in place.
func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE venues SET name = $1 WHERE id = $2`, v.Name, v.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVenueNotFound
	}
	if v.Address == nil {
		return nil
	}
	addrQuery := `
		UPDATE venue_addresses
		SET street = $1, street_number = $2, zip_code = $3, city = $4
		WHERE id = $5
	`
	a := v.Address
	_, err = r.DB.ExecContext(ctx, addrQuery, a.Street, a.StreetNumber, a.ZipCode, a.City, v.AddressID)
	return err
}

// Delete removes the venue's address; the foreign key cascades to the venue
// and events referencing it fall back to no venue.
func (r *venueRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM venue_addresses WHERE id = (SELECT venue_address_id FROM venues WHERE id = $1)`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *venueRepository) ListNames(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, r.DB, `SELECT DISTINCT name FROM venues ORDER BY name`)
}

func queryStrings(ctx context.Context, db DBTX, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
