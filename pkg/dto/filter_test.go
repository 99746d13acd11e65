package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilter_Normalize(t *testing.T) {
	d := PageDefaults{Limit: 10, MaxLimit: 100, NewestFirst: true}

	f := ListFilter{}.Normalize(d)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, 0, f.Offset())

	f = ListFilter{Page: 3, Limit: 500, Sort: SortOldest}.Normalize(d)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, SortOldest, f.Sort)
	assert.Equal(t, 200, f.Offset())

	f = ListFilter{}.Normalize(PageDefaults{Limit: 5})
	assert.Equal(t, SortOldest, f.Sort)
	assert.Equal(t, 5, f.Limit)
}

func TestNewPage(t *testing.T) {
	f := ListFilter{Page: 2, Limit: 10}
	p := NewPage([]int{1, 2, 3}, 23, f)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Items, 3)

	empty := NewPage[int](nil, 0, f)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestMapPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 7, ListFilter{Page: 2, Limit: 3})
	out := MapPage(p, func(i int) string { return string(rune('a' + i - 1)) })

	assert.Equal(t, []string{"a", "b", "c"}, out.Items)
	assert.Equal(t, int64(7), out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 3, out.TotalPages)

	empty := MapPage(Page[int]{}, func(i int) int { return i })
	assert.NotNil(t, empty.Items)
}
