package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmanagement/internal/domain"
)

// Specific sentinels are checked before the generic ones so the message names the resource.
var (
	notFoundErrors = []error{domain.ErrUserNotFound, domain.ErrEventNotFound, domain.ErrVenueNotFound, domain.ErrPerformerNotFound}
	conflictErrors = []error{domain.ErrDuplicateEmail, domain.ErrDuplicateUsername, domain.ErrDuplicateVenueName}
)

func firstMatch(err error, candidates []error, fallback error) string {
	for _, c := range candidates {
		if errors.Is(err, c) {
			return c.Error()
		}
	}
	return fallback.Error()
}

// WriteServiceError maps a service error to the matching status and error code.
// Unknown errors are logged and reported as 500 without their details.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, verr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, domain.ErrInvalidInput.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, firstMatch(err, notFoundErrors, domain.ErrNotFound))
	case errors.Is(err, domain.ErrAlreadyExists):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, firstMatch(err, conflictErrors, domain.ErrAlreadyExists))
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
