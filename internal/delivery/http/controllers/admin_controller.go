package controllers

import (
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// AdminUpdateUserRequest is the request body for PATCH /api/admin/users/{userId}.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	Role *string `json:"role"`
}

// Validate implements Validator.
func (a AdminUpdateUserRequest) Validate() []string {
	errs := a.UpdateUserRequest.Validate()
	if a.Role != nil && *a.Role != domain.RoleUser && *a.Role != domain.RoleAdmin {
		errs = append(errs, `role must be "User" or "Admin"`)
	}
	return errs
}

// VenueRequest is the request body for creating or updating a venue.
type VenueRequest struct {
	Name         string `json:"name" validate:"required,max=50"`
	Street       string `json:"street" validate:"required,min=2,max=50"`
	StreetNumber string `json:"street_number" validate:"required,max=10,hasdigit"`
	ZipCode      string `json:"zip_code" validate:"required,len=5"`
	City         string `json:"city" validate:"required,max=50"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	return helpers.ValidateStruct(v)
}

func (v VenueRequest) toDomain() domain.VenueInput {
	return domain.VenueInput{
		Name:         v.Name,
		Street:       v.Street,
		StreetNumber: v.StreetNumber,
		ZipCode:      v.ZipCode,
		City:         v.City,
	}
}

// AdminController handles the admin-only user and venue endpoints.
type AdminController struct {
	Logger *slog.Logger
	Users  domain.UserService
	Venues domain.VenueService
}

// NewAdminController creates an AdminController.
func NewAdminController(logger *slog.Logger, users domain.UserService, venues domain.VenueService) *AdminController {
	return &AdminController{
		Logger: logger,
		Users:  users,
		Venues: venues,
	}
}

// UpdateUser godoc
// @Summary Update any user (admin)
// @Description Admins may change any profile field including the role.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param body body AdminUpdateUserRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /api/admin/users/{userId} [patch]
func (c *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	var req AdminUpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := req.toDomain()
	upd.Role = req.Role
	user, err := c.Users.Update(r.Context(), principal, id, upd)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user (admin)
// @Description Deletes the user and their saved events. Events they authored are kept without an author.
// @Tags admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/users/{userId} [delete]
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "userId")
	if !ok {
		return
	}
	if err := c.Users.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// CreateVenue godoc
// @Summary Create a venue (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VenueRequest true "Venue with address"
// @Success 201 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /api/admin/venues [post]
func (c *AdminController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Venues.Create(r.Context(), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// UpdateVenue godoc
// @Summary Update a venue (admin)
// @Description Overwrites the venue name and address in place.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Param body body VenueRequest true "Venue with address"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /api/admin/venues/{venueId} [patch]
func (c *AdminController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "venueId")
	if !ok {
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Venues.Update(r.Context(), id, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue (admin)
// @Description Removes the venue and its address. Events at the venue keep no venue.
// @Tags admin
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/venues/{venueId} [delete]
func (c *AdminController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "venueId")
	if !ok {
		return
	}
	if err := c.Venues.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
