// ABOUTME: Storefront home page: the new arrivals carousel and the featured grid
// ABOUTME: Both sections load in parallel through list renderers; a rejected session stops both

package storefront

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/pagination"
)

const (
	NewArrivalsLimit = 10
	FeaturedLimit    = 8
)

var (
	// NewArrivalsState is the first page sorted newest first
	NewArrivalsState = pagination.State{Page: 1, Filters: pagination.Filters{Sort: pagination.SortNewest}}
	// FeaturedState is the first page in the backend's default order
	FeaturedState = pagination.State{Page: 1}
)

// Home holds both sections of the home page
type Home struct {
	NewArrivals listing.Container[client.Product]
	Featured    listing.Container[client.Product]
}

// Slides groups the new arrivals for the carousel
func (h Home) Slides() [][]client.Product {
	return listing.Chunk(h.NewArrivals.Items(), listing.CarouselSize)
}

// Err is the first section failure, preferring a rejected session
func (h Home) Err() error {
	for _, err := range []error{h.NewArrivals.Err, h.Featured.Err} {
		if client.IsUnauthorized(err) {
			return err
		}
	}
	return errors.Join(h.NewArrivals.Err, h.Featured.Err)
}

func newArrivals(fetch listing.FetchFunc[client.Product]) *listing.Renderer[client.Product] {
	return &listing.Renderer[client.Product]{Fetch: fetch, Limit: NewArrivalsLimit}
}

func featured(fetch listing.FetchFunc[client.Product]) *listing.Renderer[client.Product] {
	return &listing.Renderer[client.Product]{Fetch: fetch, Limit: FeaturedLimit}
}

// Placeholders is the loading state of both sections
func Placeholders() Home {
	return Home{
		NewArrivals: newArrivals(nil).Placeholders(),
		Featured:    featured(nil).Placeholders(),
	}
}

// Load fetches both sections. Sections fail independently unless the
// session is rejected, which cancels the other fetch.
func Load(ctx context.Context, fetch listing.FetchFunc[client.Product]) Home {
	var h Home
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h.NewArrivals = newArrivals(fetch).Load(ctx, NewArrivalsState)
		return rejected(h.NewArrivals.Err)
	})
	g.Go(func() error {
		h.Featured = featured(fetch).Load(ctx, FeaturedState)
		return rejected(h.Featured.Err)
	})

	if err := g.Wait(); err != nil {
		slog.Debug("home page stopped early", "error", err)
	}
	return h
}

func rejected(err error) error {
	if client.IsUnauthorized(err) {
		return err
	}
	return nil
}
