package domain

import "math"

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based). It saturates
// at math.MaxInt instead of overflowing.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size, or 0 meaning "no limit" when unset.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return 0
	}
	return p.PageSize
}
