package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/google/uuid"
)

// row is the view of a stored entity the listing filter inspects.
type row struct {
	userIDs   []uuid.UUID
	status    string
	kind      string
	createdAt time.Time
	text      []string
}

func (r row) matches(f dto.ListFilter) bool {
	if f.UserID != nil {
		found := false
		for _, id := range r.userIDs {
			if id == *f.UserID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != "" && r.status != f.Status {
		return false
	}
	if f.Type != "" && r.kind != f.Type {
		return false
	}
	if f.From != nil && r.createdAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.createdAt.After(*f.To) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		for _, t := range r.text {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	}
	return true
}

// list filters, sorts and pages values.
func list[T any](values map[uuid.UUID]T, f dto.ListFilter, view func(*T) row, clone func(T) *T) ([]*T, int64) {
	type item struct {
		v   T
		row row
	}
	matched := make([]item, 0, len(values))
	for _, v := range values {
		r := view(&v)
		if r.matches(f) {
			matched = append(matched, item{v: v, row: r})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if f.Sort == dto.SortOldest {
			return matched[i].row.createdAt.Before(matched[j].row.createdAt)
		}
		return matched[i].row.createdAt.After(matched[j].row.createdAt)
	})

	total := int64(len(matched))
	start := f.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	out := make([]*T, 0, end-start)
	for _, it := range matched[start:end] {
		out = append(out, clone(it.v))
	}
	return out, total
}
