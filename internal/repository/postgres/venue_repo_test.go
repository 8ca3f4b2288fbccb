package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var venueCols = []string{"id", "name", "venue_address_id", "street", "street_number", "zip_code", "city"}

func TestVenueRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO venue_addresses \(street, street_number, zip_code, city\)`).
		WithArgs("Main", "12A", "10431", "Athens").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
	mock.ExpectQuery(`INSERT INTO venues \(name, venue_address_id\)`).
		WithArgs("Blue Note", int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	v := domain.NewVenue(domain.VenueInput{Name: "Blue Note", Street: "Main", StreetNumber: "12A", ZipCode: "10431", City: "Athens"})
	require.NoError(t, NewVenueRepository(db).Create(ctx, v))
	require.Equal(t, int64(3), v.ID)
	require.Equal(t, int64(30), v.AddressID)
	require.Equal(t, int64(30), v.Address.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_Create_requires_address(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewVenueRepository(db).Create(context.Background(), &domain.Venue{Name: "Nowhere"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Venue
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM venues v\s+JOIN venue_addresses a`).
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(venueCols).AddRow(int64(3), "Blue Note", int64(30), "Main", "12", "10431", "Athens"))
			},
			want: &domain.Venue{
				ID: 3, Name: "Blue Note", AddressID: 30,
				Address: &domain.VenueAddress{ID: 30, Street: "Main", StreetNumber: "12", ZipCode: "10431", City: "Athens"},
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM venues v`).WithArgs(int64(3)).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrVenueNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewVenueRepository(db).GetByID(ctx, 3)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVenueRepository_Update(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE venues SET name = \$1 WHERE id = \$2`).
		WithArgs("Red Note", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE venue_addresses`).
		WithArgs("Side", "1", "54321", "Patras", int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE venues SET name`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVenueRepository(db)
	v := &domain.Venue{
		ID: 3, Name: "Red Note", AddressID: 30,
		Address: &domain.VenueAddress{ID: 30, Street: "Side", StreetNumber: "1", ZipCode: "54321", City: "Patras"},
	}
	require.NoError(t, repo.Update(ctx, v))
	require.ErrorIs(t, repo.Update(ctx, &domain.Venue{ID: 4}), domain.ErrVenueNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM venue_addresses WHERE id = \(SELECT venue_address_id FROM venues WHERE id = \$1\)`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM venue_addresses`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVenueRepository(db)
	require.NoError(t, repo.Delete(ctx, 3))
	require.ErrorIs(t, repo.Delete(ctx, 4), domain.ErrVenueNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_ListNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT name FROM venues`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Blue Note").AddRow("Gazi"))

	names, err := NewVenueRepository(db).ListNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Blue Note", "Gazi"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}
