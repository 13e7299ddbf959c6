// Package types contains common types used across the application
package types

// Paging bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page is a limit/offset window over a list.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPage clamps limit into [1, MaxLimit] (0 means DefaultLimit) and offset to >= 0.
func NewPage(limit, offset int) Page {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// List is a page of items together with the page that produced it and the
// number of items matching overall.
type List[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  Page  `json:"page"`
}
