package helpers

import (
	"net/http"
	"strconv"
)

// PathID parses the named path value as a positive int64. On failure it writes
// a 400 and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// QueryInt64 parses an optional int64 query parameter. ok is false when the
// value is present but malformed.
func QueryInt64(r *http.Request, name string) (v *int64, ok bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}
