package helpers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"eventmanagement/internal/domain"
)

// Listing defaults. page_size above MaxPageSize and page above MaxPage are clamped.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = math.MaxInt32 / MaxPageSize
)

// ParsePagination reads page and page_size from the query string. Missing,
// malformed or non-positive values fall back to the defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     min(positiveQueryInt(q, "page", DefaultPage), MaxPage),
		PageSize: min(positiveQueryInt(q, "page_size", DefaultPageSize), MaxPageSize),
	}
}

func positiveQueryInt(q url.Values, name string, fallback int) int {
	v, err := strconv.Atoi(q.Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta accompanies every paginated listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewPaginationMeta describes the page p of a listing with total rows.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	meta := PaginationMeta{Page: p.Page, PageSize: p.PageSize, Total: total}
	if p.PageSize > 0 {
		meta.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
	meta.HasNext = p.Page < meta.TotalPages
	return meta
}
