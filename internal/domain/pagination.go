package domain

import (
	"math"
	"strings"
)

// List query defaults.
const (
	DefaultPage     = 1
	DefaultLimit    = 10
	DefaultSortType = SortDesc
)

// SortType is the direction of an ordered list query.
type SortType string

const (
	SortAsc  SortType = "asc"
	SortDesc SortType = "desc"
)

// ListOptions holds the raw pagination and ordering options of a list request.
// Zero values mean "use the default".
type ListOptions struct {
	Page     int
	Limit    int
	SortBy   string
	SortType SortType
}

// EventQuery is the resolved form of ListOptions handed to the repository.
type EventQuery struct {
	Limit    int
	Offset   int
	SortBy   string
	SortType SortType
}

// Resolve fills defaults and computes the row offset: (Page - 1) * Limit.
// An offset that would overflow int saturates at math.MaxInt, which selects an empty page.
// SortBy may carry its own direction as "field:asc" or "field:desc", which wins over SortType.
func (o ListOptions) Resolve() EventQuery {
	page := o.Page
	if page == 0 {
		page = DefaultPage
	}
	limit := o.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	sortType := o.SortType
	if sortType == "" {
		sortType = DefaultSortType
	}
	sortBy := strings.TrimSpace(o.SortBy)
	if field, dir, ok := strings.Cut(sortBy, ":"); ok {
		sortBy = field
		sortType = SortType(strings.ToLower(dir))
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	return EventQuery{
		Limit:    limit,
		Offset:   offset,
		SortBy:   sortBy,
		SortType: sortType,
	}
}
