package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// Multipart requests carry the JSON payload in this form field and the image in imageFormField.
const (
	eventFormField = "event"
	imageFormField = "image"
	maxFormMemory  = 8 << 20
	maxUploadBytes = 6 << 20
)

// NewVenueRequest describes a venue created together with an event.
type NewVenueRequest struct {
	Name         string `json:"name" validate:"required,max=50"`
	Street       string `json:"street" validate:"required,min=2,max=50"`
	StreetNumber string `json:"street_number" validate:"required,max=10,hasdigit"`
	ZipCode      string `json:"zip_code" validate:"required,len=5"`
	City         string `json:"city" validate:"required,max=50"`
}

// PerformerNameRequest names a performer in event payloads.
type PerformerNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// CreateEventRequest is the request body for POST /api/events, or the "event" part of a multipart request.
type CreateEventRequest struct {
	Title         string                 `json:"title" validate:"required,min=5,max=50"`
	Description   *string                `json:"description" validate:"omitempty,max=250"`
	Date          domain.Date            `json:"date" swaggertype:"string" example:"2025-01-01"`
	Price         *float64               `json:"price" validate:"omitempty,gte=0"`
	Category      string                 `json:"category" validate:"required,oneof=Music Theater Sports Comedy Conference Festival Exhibition Other"`
	VenueID       *int64                 `json:"venue_id" validate:"omitempty,gt=0"`
	NewVenue      *NewVenueRequest       `json:"new_venue"`
	PerformerIDs  []int64                `json:"performer_ids" validate:"omitempty,dive,gt=0"`
	NewPerformers []PerformerNameRequest `json:"new_performers" validate:"omitempty,dive"`
	UserID        *int64                 `json:"user_id" validate:"omitempty,gt=0"`
}

// Validate implements Validator. Names are trimmed before the length checks run.
func (c *CreateEventRequest) Validate() []string {
	c.Title = strings.TrimSpace(c.Title)
	if c.NewVenue != nil {
		c.NewVenue.Name = strings.TrimSpace(c.NewVenue.Name)
	}
	trimPerformerNames(c.NewPerformers)
	errs := helpers.ValidateStruct(c)
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

func (c CreateEventRequest) toDomain(userID int64, imageURL *string) domain.EventInsert {
	in := domain.EventInsert{
		Title:        c.Title,
		Description:  c.Description,
		Date:         c.Date,
		Price:        c.Price,
		Category:     c.Category,
		ImageURL:     imageURL,
		UserID:       userID,
		VenueID:      c.VenueID,
		PerformerIDs: c.PerformerIDs,
	}
	if c.NewVenue != nil {
		in.NewVenue = &domain.VenueInput{
			Name:         c.NewVenue.Name,
			Street:       c.NewVenue.Street,
			StreetNumber: c.NewVenue.StreetNumber,
			ZipCode:      c.NewVenue.ZipCode,
			City:         c.NewVenue.City,
		}
	}
	for _, p := range c.NewPerformers {
		in.NewPerformers = append(in.NewPerformers, p.Name)
	}
	return in
}

// UpdateEventRequest is the request body for PATCH /api/events/{eventId}. Scalars are
// overwritten; absent description and price become null. Omitted performers leave
// the line-up unchanged, an empty list clears it. Omitted venue_* fields keep the
// attached venue's stored values.
type UpdateEventRequest struct {
	Title             string                 `json:"title" validate:"required,min=5,max=50"`
	Description       *string                `json:"description" validate:"omitempty,max=250"`
	Date              domain.Date            `json:"date" swaggertype:"string" example:"2025-01-01"`
	Price             *float64               `json:"price" validate:"omitempty,gte=0"`
	Category          string                 `json:"category" validate:"required,oneof=Music Theater Sports Comedy Conference Festival Exhibition Other"`
	VenueName         *string                `json:"venue_name" validate:"omitempty,max=50"`
	VenueStreet       *string                `json:"venue_street" validate:"omitempty,min=2,max=50"`
	VenueStreetNumber *string                `json:"venue_street_number" validate:"omitempty,max=10,hasdigit"`
	VenueZipCode      *string                `json:"venue_zip_code" validate:"omitempty,len=5"`
	VenueCity         *string                `json:"venue_city" validate:"omitempty,max=50"`
	Performers        []PerformerNameRequest `json:"performers" validate:"omitempty,dive"`
}

// Validate implements Validator. Names are trimmed before the length checks run.
func (u *UpdateEventRequest) Validate() []string {
	u.Title = strings.TrimSpace(u.Title)
	if u.VenueName != nil {
		name := strings.TrimSpace(*u.VenueName)
		u.VenueName = &name
	}
	trimPerformerNames(u.Performers)
	errs := helpers.ValidateStruct(u)
	if u.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

func trimPerformerNames(performers []PerformerNameRequest) {
	for i := range performers {
		performers[i].Name = strings.TrimSpace(performers[i].Name)
	}
}

func (u UpdateEventRequest) toDomain(imageURL *string) domain.EventUpdate {
	upd := domain.EventUpdate{
		Title:             u.Title,
		Description:       u.Description,
		Date:              u.Date,
		Price:             u.Price,
		Category:          u.Category,
		ImageURL:          imageURL,
		VenueName:         u.VenueName,
		VenueStreet:       u.VenueStreet,
		VenueStreetNumber: u.VenueStreetNumber,
		VenueZipCode:      u.VenueZipCode,
		VenueCity:         u.VenueCity,
	}
	if u.Performers != nil {
		upd.Performers = make([]string, 0, len(u.Performers))
		for _, p := range u.Performers {
			upd.Performers = append(upd.Performers, p.Name)
		}
	}
	return upd
}

// VenueAddressResponse is the venue address embedded in EventResponse.
type VenueAddressResponse struct {
	Street       string `json:"street"`
	StreetNumber string `json:"street_number"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
}

// EventResponse is the read model of an event.
type EventResponse struct {
	EventID      int64                 `json:"event_id"`
	Title        string                `json:"title"`
	Description  *string               `json:"description"`
	Date         domain.Date           `json:"date" swaggertype:"string" example:"2025-01-01"`
	Price        *float64              `json:"price"`
	Category     string                `json:"category"`
	ImageURL     *string               `json:"image_url"`
	UserID       *int64                `json:"user_id"`
	VenueID      *int64                `json:"venue_id"`
	VenueName    *string               `json:"venue_name"`
	VenueAddress *VenueAddressResponse `json:"venue_address"`
	Performers   []PerformerResponse   `json:"performers"`
	CreatedAt    time.Time             `json:"created_at"`
}

func toEventResponse(e *domain.Event) EventResponse {
	resp := EventResponse{
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Price:       e.Price,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
		UserID:      e.UserID,
		VenueID:     e.VenueID,
		Performers:  toPerformerResponses(e.Performers),
		CreatedAt:   e.CreatedAt,
	}
	if e.Venue != nil {
		name := e.Venue.Name
		resp.VenueName = &name
		if a := e.Venue.Address; a != nil {
			resp.VenueAddress = &VenueAddressResponse{
				Street:       a.Street,
				StreetNumber: a.StreetNumber,
				ZipCode:      a.ZipCode,
				City:         a.City,
			}
		}
	}
	return resp
}

func toEventResponses(events []*domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

// ListEventsResponse is the data payload for paginated event listings.
type ListEventsResponse struct {
	Items      []EventResponse        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// SavedResponse reports whether the caller saved an event.
type SavedResponse struct {
	Saved bool `json:"saved"`
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for event listings.
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// FilterOptionsSuccessResponse is the success response envelope for GET /api/events/filter-events.
type FilterOptionsSuccessResponse struct {
	Data  []string          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SavedSuccessResponse is the success response envelope for GET /api/events/{eventId}/save.
type SavedSuccessResponse struct {
	Data  SavedResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventController handles event, bookmark and filter endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Filters domain.FilterService
	Images  domain.ImageStore
}

// NewEventController creates an EventController.
func NewEventController(logger *slog.Logger, svc domain.EventService, filters domain.FilterService, images domain.ImageStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Filters: filters,
		Images:  images,
	}
}

// decodeEventPayload reads dest from a JSON body or from the "event" part of a
// multipart form, saving the optional image. It writes the error response and
// returns false on failure.
func (c *EventController) decodeEventPayload(w http.ResponseWriter, r *http.Request, dest helpers.Validator) (*string, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, helpers.DecodeAndValidate(w, r, dest)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(r.FormValue(eventFormField)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, eventFormField+": "+err.Error())
		return nil, false
	}
	if !helpers.RunValidation(w, dest) {
		return nil, false
	}
	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid image: "+err.Error())
		return nil, false
	}
	defer file.Close()
	url, err := c.Images.Save(r.Context(), header.Filename, file)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return nil, false
	}
	return &url, true
}

// Create godoc
// @Summary Create an event
// @Description Accepts JSON, or multipart/form-data with the JSON in the "event" field and an optional "image" file (max 5 MiB, jpg/png/gif/webp). Supply venue_id or new_venue, and performer_ids or new_performers; new_performers reuse performers with the same name and win when both lists are sent. user_id defaults to the caller; only admins may set another author.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateEventRequest
	imageURL, ok := c.decodeEventPayload(w, r, &req)
	if !ok {
		return
	}
	userID := principal.UserID
	if req.UserID != nil {
		userID = *req.UserID
	}
	event, err := c.Service.Create(r.Context(), principal, req.toDomain(userID, imageURL))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toEventResponse(event))
}

// List godoc
// @Summary Search events
// @Description All filters are optional and combine with AND. timeframe is "upcoming" or "past" relative to today.
// @Tags events
// @Produce json
// @Param title query string false "Title contains (case-insensitive)"
// @Param category query string false "Category"
// @Param venue_id query int false "Venue ID"
// @Param venue_name query string false "Venue name"
// @Param performer query string false "Performer name"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param user_id query int false "Author user ID"
// @Param timeframe query string false "upcoming or past"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	f, errs := parseEventFilter(r)
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), f, params)
	c.writeEventPage(w, r, params, events, total, err)
}

func parseEventFilter(r *http.Request) (domain.EventFilter, []string) {
	q := r.URL.Query()
	f := domain.EventFilter{
		Title:     strings.TrimSpace(q.Get("title")),
		Category:  strings.TrimSpace(q.Get("category")),
		VenueName: strings.TrimSpace(q.Get("venue_name")),
		Performer: strings.TrimSpace(q.Get("performer")),
	}
	var errs []string
	var ok bool
	if f.VenueID, ok = helpers.QueryInt64(r, "venue_id"); !ok {
		errs = append(errs, "venue_id must be an integer")
	}
	if f.UserID, ok = helpers.QueryInt64(r, "user_id"); !ok {
		errs = append(errs, "user_id must be an integer")
	}
	if s := q.Get("date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		} else {
			f.Date = &d
		}
	}
	switch tf := domain.Timeframe(q.Get("timeframe")); tf {
	case domain.TimeframeAny:
	case domain.TimeframeUpcoming, domain.TimeframePast:
		f.Timeframe = tf
	default:
		errs = append(errs, `timeframe must be "upcoming" or "past"`)
	}
	return f, errs
}

func (c *EventController) writeEventPage(w http.ResponseWriter, r *http.Request, params domain.PaginationParams, events []*domain.Event, total int, err error) {
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: toEventResponses(events), Pagination: meta})
}

// Upcoming godoc
// @Summary List upcoming events
// @Description Events dated today or later, soonest first.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Router /api/events/upcoming [get]
func (c *EventController) Upcoming(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.Upcoming(r.Context(), params)
	c.writeEventPage(w, r, params, events, total, err)
}

// Past godoc
// @Summary List past events
// @Description Events dated before today, most recent first.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Router /api/events/past [get]
func (c *EventController) Past(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.Past(r.Context(), params)
	c.writeEventPage(w, r, params, events, total, err)
}

// ListByUser godoc
// @Summary List events authored by a user
// @Tags events
// @Produce json
// @Param userId path int true "User ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/users/{userId}/events [get]
func (c *EventController) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListByUser(r.Context(), id, params)
	c.writeEventPage(w, r, params, events, total, err)
}

// ListSaved godoc
// @Summary List the caller's saved events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/users/me/saved-events [get]
func (c *EventController) ListSaved(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListSaved(r.Context(), principal.UserID, params)
	c.writeEventPage(w, r, params, events, total, err)
}

// FilterOptions godoc
// @Summary List filter values
// @Description Distinct venue names, event dates or performer names for the search dropdowns.
// @Tags events
// @Produce json
// @Param filter query string true "venue, date or performer"
// @Success 200 {object} controllers.FilterOptionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events/filter-events [get]
func (c *EventController) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := c.Filters.Options(r.Context(), strings.ToLower(strings.TrimSpace(r.URL.Query().Get("filter"))))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if opts == nil {
		opts = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, opts)
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventId} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	event, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponse(event))
}

// Update godoc
// @Summary Update an event
// @Description Only the author or an admin may update. Accepts JSON or multipart/form-data like create; a new image replaces the stored path. Omitted venue_* fields keep the attached venue's stored values.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param event body UpdateEventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventId} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	var req UpdateEventRequest
	imageURL, ok := c.decodeEventPayload(w, r, &req)
	if !ok {
		return
	}
	event, err := c.Service.Update(r.Context(), principal, id, req.toDomain(imageURL))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponse(event))
}

// Delete godoc
// @Summary Delete an event
// @Description Only the author or an admin may delete.
// @Tags events
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventId} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), principal, id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// IsSaved godoc
// @Summary Check whether the caller saved an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.SavedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/events/{eventId}/save [get]
func (c *EventController) IsSaved(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	saved, err := c.Service.IsSaved(r.Context(), principal.UserID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SavedResponse{Saved: saved})
}

// Save godoc
// @Summary Save an event
// @Description Idempotent; saving twice keeps one bookmark.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.SavedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventId}/save [post]
func (c *EventController) Save(w http.ResponseWriter, r *http.Request) {
	c.setSaved(w, r, true)
}

// Unsave godoc
// @Summary Remove a saved event
// @Description Idempotent; removing a missing bookmark succeeds.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.SavedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/events/{eventId}/save [delete]
func (c *EventController) Unsave(w http.ResponseWriter, r *http.Request) {
	c.setSaved(w, r, false)
}

func (c *EventController) setSaved(w http.ResponseWriter, r *http.Request, saved bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "eventId")
	if !ok {
		return
	}
	var err error
	if saved {
		err = c.Service.SaveEvent(r.Context(), principal.UserID, id)
	} else {
		err = c.Service.UnsaveEvent(r.Context(), principal.UserID, id)
	}
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SavedResponse{Saved: saved})
}
