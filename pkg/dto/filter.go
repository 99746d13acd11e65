// Package dto holds query inputs and paged outputs shared by services,
// repositories and the web layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// SortOrder orders listings by creation time.
type SortOrder string

const (
	SortNewest SortOrder = "desc"
	SortOldest SortOrder = "asc"
)

// ListFilter narrows and pages a workflow or ledger listing.
// Zero values mean "no constraint".
type ListFilter struct {
	UserID *uuid.UUID
	Status string
	Type   string
	From   *time.Time
	To     *time.Time
	Search string
	Page   int
	Limit  int
	Sort   SortOrder
}

// PageDefaults configures listing defaults.
type PageDefaults struct {
	Limit       int
	MaxLimit    int
	NewestFirst bool
}

// Normalize fills defaults and clamps the page size.
func (f ListFilter) Normalize(d PageDefaults) ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = d.Limit
	}
	if d.MaxLimit > 0 && f.Limit > d.MaxLimit {
		f.Limit = d.MaxLimit
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Sort != SortNewest && f.Sort != SortOldest {
		if d.NewestFirst {
			f.Sort = SortNewest
		} else {
			f.Sort = SortOldest
		}
	}
	return f
}

// Offset is the number of rows skipped before the current page.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ForUser returns a copy of f scoped to userID.
func (f ListFilter) ForUser(userID uuid.UUID) ListFilter {
	f.UserID = &userID
	return f
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPage builds a page from the items of the normalized filter f.
func NewPage[T any](items []T, total int64, f ListFilter) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if f.Limit > 0 {
		pages = int((total + int64(f.Limit) - 1) / int64(f.Limit))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: pages,
	}
}

// MapPage converts the items of p with fn, keeping the paging fields.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
