package domain

import (
	"context"
	"time"
)

// Event categories accepted on create and update.
const (
	CategoryMusic      = "Music"
	CategoryTheater    = "Theater"
	CategorySports     = "Sports"
	CategoryComedy     = "Comedy"
	CategoryConference = "Conference"
	CategoryFestival   = "Festival"
	CategoryExhibition = "Exhibition"
	CategoryOther      = "Other"
)

// Categories lists every valid event category.
var Categories = []string{
	CategoryMusic, CategoryTheater, CategorySports, CategoryComedy,
	CategoryConference, CategoryFestival, CategoryExhibition, CategoryOther,
}

// Event is a dated happening at an optional venue with zero or more performers.
// Venue and Performers are populated by EventRepository.GetByID and List.
type Event struct {
	ID          int64
	Title       string
	Description *string
	Date        Date
	Price       *float64
	Category    string
	ImageURL    *string
	VenueID     *int64
	UserID      *int64
	Venue       *Venue
	Performers  []*Performer
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPerformerNamed reports whether a performer with exactly this name is attached.
func (e *Event) HasPerformerNamed(name string) bool {
	for _, p := range e.Performers {
		if p.Name == name {
			return true
		}
	}
	return false
}

// EventInsert is the input of event creation. Exactly one venue source and at most
// one performer source is honored: NewVenue over VenueID, NewPerformers over PerformerIDs.
type EventInsert struct {
	Title         string
	Description   *string
	Date          Date
	Price         *float64
	Category      string
	ImageURL      *string
	UserID        int64
	VenueID       *int64
	NewVenue      *VenueInput
	PerformerIDs  []int64
	NewPerformers []string
}

// EventUpdate is the input of an event update. Scalars overwrite the stored values,
// nil meaning null. Venue fields overwrite the attached venue in place. A nil
// Performers slice leaves the performer set untouched.
type EventUpdate struct {
	Title             string
	Description       *string
	Date              Date
	Price             *float64
	Category          string
	ImageURL          *string
	VenueName         *string
	VenueStreet       *string
	VenueStreetNumber *string
	VenueZipCode      *string
	VenueCity         *string
	Performers        []string
}

// Timeframe restricts a listing relative to EventFilter.Today.
type Timeframe string

const (
	TimeframeAny      Timeframe = ""
	TimeframeUpcoming Timeframe = "upcoming"
	TimeframePast     Timeframe = "past"
)

// EventFilter narrows EventRepository.List. Zero values do not filter.
type EventFilter struct {
	Title     string
	Category  string
	VenueID   *int64
	VenueName string
	Performer string
	Date      *Date
	UserID    *int64
	SavedBy   *int64
	Timeframe Timeframe
	Today     Date
}

// EventRepository defines the interface for event storage. Create and Update
// write the event row only; performers are linked with AttachPerformer.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f EventFilter, p PaginationParams) ([]*Event, int, error)
	AttachPerformer(ctx context.Context, eventID, performerID int64) error
	DetachPerformer(ctx context.Context, eventID, performerID int64) error
	ListDates(ctx context.Context) ([]Date, error)
}

// EventSave is a user's bookmark on an event.
type EventSave struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// SaveRepository defines the interface for bookmark storage.
type SaveRepository interface {
	Exists(ctx context.Context, userID, eventID int64) (bool, error)
	Create(ctx context.Context, s EventSave) error
	Delete(ctx context.Context, s EventSave) error
}

// EventService defines the business logic for events and bookmarks.
type EventService interface {
	Create(ctx context.Context, actor Principal, in EventInsert) (*Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, f EventFilter, p PaginationParams) ([]*Event, int, error)
	Upcoming(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Past(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	ListByUser(ctx context.Context, userID int64, p PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, actor Principal, id int64, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, actor Principal, id int64) error
	SaveEvent(ctx context.Context, userID, eventID int64) error
	UnsaveEvent(ctx context.Context, userID, eventID int64) error
	IsSaved(ctx context.Context, userID, eventID int64) (bool, error)
	ListSaved(ctx context.Context, userID int64, p PaginationParams) ([]*Event, int, error)
}

// Filter option kinds served by FilterService.
const (
	FilterVenue     = "venue"
	FilterDate      = "date"
	FilterPerformer = "performer"
)

// FilterService returns the distinct values offered by the event filter dropdowns.
type FilterService interface {
	Options(ctx context.Context, kind string) ([]string, error)
}

// FilterInvalidator drops cached filter options after a write changes them.
type FilterInvalidator interface {
	Invalidate(ctx context.Context, kinds ...string)
}
