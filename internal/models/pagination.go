package models

import "strconv"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parses page and limit query values. Missing or malformed
// values fall back to page 1 and the default limit; limit is clamped to 1..50.
func NewPagination(pageStr, limitStr string) Pagination {
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit == 0 {
		limit = DefaultPageLimit
	}
	limit = max(1, min(MaxPageLimit, limit))

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 1
	}
	page = max(1, page)

	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

type Page[T any] struct {
	Data    []T   `json:"data"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

func NewPage[T any](items []T, p Pagination, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data:    items,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: p.Skip()+int64(len(items)) < total,
	}
}
