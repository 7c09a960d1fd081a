// ABOUTME: Tests for pager construction and filter encoding
// ABOUTME: Exercises boundary pages, clamping and filter preservation

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_HiddenForSinglePage(t *testing.T) {
	for _, total := range []int{-1, 0, 1} {
		v := Build(total, 1)
		assert.True(t, v.Hidden, "total=%d", total)
		assert.Empty(t, v.Controls)
	}
}

func TestBuild_MiddlePage(t *testing.T) {
	v := Build(3, 2)
	require.False(t, v.Hidden)
	require.Len(t, v.Controls, 5)

	assert.Equal(t, KindPrev, v.Controls[0].Kind)
	assert.False(t, v.Controls[0].Disabled)
	assert.Equal(t, KindNext, v.Controls[4].Kind)
	assert.False(t, v.Controls[4].Disabled)

	var active []int
	for _, c := range v.Controls {
		if c.Active {
			active = append(active, c.Page)
		}
	}
	assert.Equal(t, []int{2}, active)

	prev, ok := v.Prev()
	assert.True(t, ok)
	assert.Equal(t, 1, prev)
	next, ok := v.Next()
	assert.True(t, ok)
	assert.Equal(t, 3, next)
}

func TestBuild_FirstAndLastPageDisableEnds(t *testing.T) {
	first := Build(2, 1)
	_, ok := first.Prev()
	assert.False(t, ok)
	next, ok := first.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, next)

	last := Build(2, 2)
	_, ok = last.Next()
	assert.False(t, ok)
}

func TestBuild_ClampsCurrent(t *testing.T) {
	assert.Equal(t, 4, Build(4, 9).Current)
	assert.Equal(t, 1, Build(4, 0).Current)
}

func TestView_Target(t *testing.T) {
	v := Build(3, 1)

	_, ok := v.Target(0) // disabled prev
	assert.False(t, ok)

	page, ok := v.Target(3)
	assert.True(t, ok)
	assert.Equal(t, 3, page)

	_, ok = v.Target(99)
	assert.False(t, ok)
}

func TestView_PageAndLast(t *testing.T) {
	v := Build(5, 2)

	page, ok := v.Page(4)
	assert.True(t, ok)
	assert.Equal(t, 4, page)

	_, ok = v.Page(6)
	assert.False(t, ok)

	page, ok = v.Last()
	assert.True(t, ok)
	assert.Equal(t, 5, page)

	_, ok = Build(1, 1).Last()
	assert.False(t, ok)
}

func TestFilters_Values(t *testing.T) {
	f := Filters{Category: "4", Sort: SortPriceAsc, Condition: "used", Search: " lamp "}
	q := f.Values()
	assert.Equal(t, "4", q.Get("category_id"))
	assert.Equal(t, "price_asc", q.Get("sort"))
	assert.Equal(t, "used", q.Get("condition"))
	assert.Equal(t, "lamp", q.Get("search"))

	assert.Empty(t, Filters{Category: CategoryAll}.Values())
}

func TestFilters_Validate(t *testing.T) {
	assert.NoError(t, Filters{Sort: SortNewest}.Validate())
	assert.NoError(t, Filters{}.Validate())
	assert.Error(t, Filters{Sort: "cheapest"}.Validate())
}

func TestState_WithPageKeepsFilters(t *testing.T) {
	s := State{Page: 1, Filters: Filters{Category: "2", Sort: SortNewest}}

	moved := s.WithPage(3)
	assert.Equal(t, 3, moved.Page)
	assert.Equal(t, s.Filters, moved.Filters)
	assert.Equal(t, 1, s.WithPage(0).Page)

	reset := moved.WithFilters(Filters{Sort: SortPriceDesc})
	assert.Equal(t, 1, reset.Page)
}
