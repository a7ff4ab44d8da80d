package types

import "math"

// Projection names the two read shapes every entity supports: a light
// summary row for listings, and a full row with nested associations for
// detail views. Repos interpret the projection per entity.
type Projection string

const (
	ProjectionLight Projection = "light"
	ProjectionFull  Projection = "full"
)

// Page is one page of a paginated listing. TotalCount is a distinct count
// over the base entity, never inflated by association fan-out.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, totalCount int64, pageSize int) Page[T] {
	pages := 0
	if pageSize > 0 {
		pages = int(math.Ceil(float64(totalCount) / float64(pageSize)))
	}
	return Page[T]{Items: items, TotalCount: totalCount, TotalPages: pages}
}
