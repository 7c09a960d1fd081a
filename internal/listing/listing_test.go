// ABOUTME: Tests for the list renderer and carousel chunking
// ABOUTME: Checks placeholder, empty and item states and pager wiring

package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/pagination"
)

func TestPlaceholders(t *testing.T) {
	r := &Renderer[string]{Limit: 4}
	c := r.Placeholders()
	require.Len(t, c.Elements, 4)
	assert.True(t, c.Loading)
	for _, e := range c.Elements {
		assert.Equal(t, KindPlaceholder, e.Kind)
	}

	assert.Len(t, (&Renderer[string]{}).Placeholders().Elements, DefaultPlaceholders)
}

func TestResolve_ItemsReplacePlaceholders(t *testing.T) {
	var gotTotal, gotCurrent int
	r := &Renderer[string]{
		Limit: 3,
		Paginate: func(total, current int) pagination.View {
			gotTotal, gotCurrent = total, current
			return pagination.Build(total, current)
		},
	}

	c := r.Resolve(&client.Page[string]{Data: []string{"a", "b", "c", "d"}, TotalPages: 5, CurrentPage: 2})
	assert.Equal(t, []string{"a", "b", "c"}, c.Items())
	assert.False(t, c.Loading)
	assert.Equal(t, 5, gotTotal)
	assert.Equal(t, 2, gotCurrent)
	assert.False(t, c.Pager.Hidden)
}

func TestResolve_EmptyPage(t *testing.T) {
	called := false
	r := &Renderer[string]{
		Paginate: func(total, current int) pagination.View {
			called = true
			assert.Equal(t, 0, total)
			return pagination.Build(total, current)
		},
	}

	c := r.Resolve(&client.Page[string]{Data: []string{}, TotalPages: 0, CurrentPage: 1})
	require.Len(t, c.Elements, 1)
	assert.Equal(t, KindEmpty, c.Elements[0].Kind)
	assert.True(t, c.Empty())
	assert.True(t, called, "pagination runs for empty results too")
	assert.True(t, c.Pager.Hidden)
}

func TestLoad_PassesStateAndReportsErrors(t *testing.T) {
	want := pagination.State{Page: 2, Filters: pagination.Filters{Sort: pagination.SortNewest}}
	r := &Renderer[int]{
		Fetch: func(_ context.Context, st pagination.State) (*client.Page[int], error) {
			assert.Equal(t, want, st)
			return &client.Page[int]{Data: []int{1, 2}, TotalPages: 1, CurrentPage: 2}, nil
		},
		Paginate: pagination.Build,
	}
	c := r.Load(context.Background(), want)
	assert.Equal(t, []int{1, 2}, c.Items())
	assert.True(t, c.Pager.Hidden)

	boom := errors.New("boom")
	r.Fetch = func(context.Context, pagination.State) (*client.Page[int], error) { return nil, boom }
	c = r.Load(context.Background(), want)
	assert.ErrorIs(t, c.Err, boom)
	assert.Empty(t, c.Elements)
}

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	groups := Chunk(items, CarouselSize)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, groups[0])
	assert.Equal(t, []int{6, 7}, groups[1])

	assert.Empty(t, Chunk([]int{}, 5))
	assert.Len(t, Chunk(items, 0), 2, "non-positive size falls back to carousel size")
}
