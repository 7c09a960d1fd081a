// ABOUTME: Tests for the storefront home page loader
// ABOUTME: Checks section limits, carousel slides and failure isolation

package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/pagination"
)

func products(n int) []client.Product {
	out := make([]client.Product, n)
	for i := range out {
		out[i] = client.Product{ID: int64(i + 1)}
	}
	return out
}

func TestLoad(t *testing.T) {
	var mu sync.Mutex
	var states []pagination.State
	fetch := func(_ context.Context, s pagination.State) (*client.Page[client.Product], error) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
		return &client.Page[client.Product]{Data: products(12), TotalPages: 2, CurrentPage: 1}, nil
	}

	h := Load(context.Background(), fetch)
	require.NoError(t, h.Err())
	assert.ElementsMatch(t, []pagination.State{NewArrivalsState, FeaturedState}, states)

	assert.Len(t, h.NewArrivals.Items(), NewArrivalsLimit)
	assert.Len(t, h.Featured.Items(), FeaturedLimit)
	assert.True(t, h.NewArrivals.Pager.Hidden)

	slides := h.Slides()
	require.Len(t, slides, 2)
	assert.Len(t, slides[0], listing.CarouselSize)
	assert.Len(t, slides[1], listing.CarouselSize)
	assert.Equal(t, int64(6), slides[1][0].ID)
}

func TestLoad_ShortNewArrivals(t *testing.T) {
	fetch := func(_ context.Context, s pagination.State) (*client.Page[client.Product], error) {
		if s.Filters.Sort == pagination.SortNewest {
			return &client.Page[client.Product]{Data: products(7)}, nil
		}
		return &client.Page[client.Product]{}, nil
	}

	h := Load(context.Background(), fetch)
	slides := h.Slides()
	require.Len(t, slides, 2)
	assert.Len(t, slides[1], 2)
	assert.True(t, h.Featured.Empty())
}

func TestLoad_FailureIsPerSection(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, s pagination.State) (*client.Page[client.Product], error) {
		if s.Filters.Sort == pagination.SortNewest {
			return nil, boom
		}
		return &client.Page[client.Product]{Data: products(3)}, nil
	}

	h := Load(context.Background(), fetch)
	assert.ErrorIs(t, h.Err(), boom)
	assert.Empty(t, h.Slides())
	assert.Len(t, h.Featured.Items(), 3)
}

func TestLoad_UnauthorizedCancelsOtherSection(t *testing.T) {
	fetch := func(ctx context.Context, s pagination.State) (*client.Page[client.Product], error) {
		if s.Filters.Sort == pagination.SortNewest {
			return nil, client.ErrUnauthorized
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, errors.New("featured fetch was never canceled")
		}
	}

	h := Load(context.Background(), fetch)
	assert.True(t, client.IsUnauthorized(h.Err()))
	assert.ErrorIs(t, h.Featured.Err, context.Canceled)
}

func TestPlaceholders(t *testing.T) {
	h := Placeholders()
	assert.Len(t, h.NewArrivals.Elements, NewArrivalsLimit)
	assert.Len(t, h.Featured.Elements, FeaturedLimit)
	assert.True(t, h.NewArrivals.Loading)
	assert.Empty(t, h.Slides())
	assert.NoError(t, h.Err())
}
