package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// VenueSuccessResponse is the success response envelope for endpoints returning one venue.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVenuesSuccessResponse is the success response envelope for GET /api/venues.
type ListVenuesSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VenueController serves the public venue endpoints.
type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

// NewVenueController creates a VenueController.
func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Success 200 {object} controllers.ListVenuesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/venues [get]
func (c *VenueController) List(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// Get godoc
// @Summary Get a venue
// @Tags venues
// @Produce json
// @Param venueId path int true "Venue ID"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/venues/{venueId} [get]
func (c *VenueController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "venueId")
	if !ok {
		return
	}
	venue, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DuplicateName godoc
// @Summary Check whether a venue name is taken
// @Tags venues
// @Produce json
// @Param name query string true "Venue name"
// @Success 200 {object} controllers.TakenSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/venues/duplicate-name [get]
func (c *VenueController) DuplicateName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name is required")
		return
	}
	taken, err := c.Service.IsNameTaken(r.Context(), name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TakenResponse{Taken: taken})
}
