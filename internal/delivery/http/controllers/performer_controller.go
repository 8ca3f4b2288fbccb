package controllers

import (
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// PerformerResponse is the performer as embedded in event payloads and performer listings.
type PerformerResponse struct {
	PerformerID int64  `json:"performer_id"`
	Name        string `json:"name"`
}

func toPerformerResponses(performers []*domain.Performer) []PerformerResponse {
	out := make([]PerformerResponse, 0, len(performers))
	for _, p := range performers {
		out = append(out, PerformerResponse{PerformerID: p.ID, Name: p.Name})
	}
	return out
}

// PerformerSuccessResponse is the success response envelope for GET /api/performers/{performerId}.
type PerformerSuccessResponse struct {
	Data  PerformerResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListPerformersSuccessResponse is the success response envelope for GET /api/performers.
type ListPerformersSuccessResponse struct {
	Data  []PerformerResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type PerformerController struct {
	Logger  *slog.Logger
	Service domain.PerformerService
}

func NewPerformerController(logger *slog.Logger, svc domain.PerformerService) *PerformerController {
	return &PerformerController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List performers
// @Description Optional name filter matches case-insensitively anywhere in the name.
// @Tags performers
// @Produce json
// @Param name query string false "Name contains"
// @Success 200 {object} controllers.ListPerformersSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/performers [get]
func (c *PerformerController) List(w http.ResponseWriter, r *http.Request) {
	performers, err := c.Service.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toPerformerResponses(performers))
}

// Get godoc
// @Summary Get a performer
// @Tags performers
// @Produce json
// @Param performerId path int true "Performer ID"
// @Success 200 {object} controllers.PerformerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/performers/{performerId} [get]
func (c *PerformerController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "performerId")
	if !ok {
		return
	}
	p, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PerformerResponse{PerformerID: p.ID, Name: p.Name})
}
