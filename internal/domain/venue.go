package domain

import "context"

// VenueAddress is the postal address of a venue.
// swagger:model VenueAddress
type VenueAddress struct {
	ID           int64  `json:"id"`
	Street       string `json:"street"`
	StreetNumber string `json:"street_number"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
}

// Venue is a place where events happen. AddressID references its VenueAddress.
// swagger:model Venue
type Venue struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	AddressID int64         `json:"address_id"`
	Address   *VenueAddress `json:"address,omitempty"`
}

// VenueInput holds the fields needed to create or overwrite a venue and its address.
type VenueInput struct {
	Name         string
	Street       string
	StreetNumber string
	ZipCode      string
	City         string
}

// NewVenue builds an unsaved Venue with its address from in.
func NewVenue(in VenueInput) *Venue {
	return &Venue{
		Name: in.Name,
		Address: &VenueAddress{
			Street:       in.Street,
			StreetNumber: in.StreetNumber,
			ZipCode:      in.ZipCode,
			City:         in.City,
		},
	}
}

// VenueRepository defines the interface for venue storage. Create and Update
// write the venue and its address; Delete removes both.
type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id int64) (*Venue, error)
	GetByName(ctx context.Context, name string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id int64) error
	ListNames(ctx context.Context) ([]string, error)
}

// VenueService defines the business logic for venues.
type VenueService interface {
	Create(ctx context.Context, in VenueInput) (*Venue, error)
	Get(ctx context.Context, id int64) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, id int64, in VenueInput) (*Venue, error)
	Delete(ctx context.Context, id int64) error
	IsNameTaken(ctx context.Context, name string) (bool, error)
}
