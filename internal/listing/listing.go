// ABOUTME: Generic list view model: placeholders while loading, items or one empty element after
// ABOUTME: Renderers fetch a page, resolve it to elements and attach the pager

package listing

import (
	"context"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/pagination"
)

const (
	// DefaultPlaceholders is shown when a renderer has no limit
	DefaultPlaceholders = 8
	// CarouselSize is the number of items per carousel slide
	CarouselSize = 5
)

// Kind tags a container element
type Kind int

const (
	KindPlaceholder Kind = iota
	KindItem
	KindEmpty
)

// Element is one slot in a container
type Element[T any] struct {
	Kind Kind
	Item T
}

// Container is what a list view renders
type Container[T any] struct {
	Elements []Element[T]
	Pager    pagination.View
	Loading  bool
	Err      error
}

// Items returns the resolved items, skipping placeholders and the empty element
func (c Container[T]) Items() []T {
	var out []T
	for _, e := range c.Elements {
		if e.Kind == KindItem {
			out = append(out, e.Item)
		}
	}
	return out
}

// Empty reports whether the container resolved to no items
func (c Container[T]) Empty() bool {
	return len(c.Elements) == 1 && c.Elements[0].Kind == KindEmpty
}

// FetchFunc loads one page of T for a listing state
type FetchFunc[T any] func(ctx context.Context, state pagination.State) (*client.Page[T], error)

// Renderer turns fetched pages into containers
type Renderer[T any] struct {
	Fetch FetchFunc[T]
	// Limit caps placeholders and resolved items; zero means
	// DefaultPlaceholders placeholders and no item cap
	Limit int
	// Paginate builds the pager; nil means no pager
	Paginate func(totalPages, currentPage int) pagination.View
}

// Placeholders is the loading state: Limit inert placeholder elements
func (r *Renderer[T]) Placeholders() Container[T] {
	n := r.Limit
	if n <= 0 {
		n = DefaultPlaceholders
	}
	return Container[T]{
		Elements: make([]Element[T], n), // zero Kind is KindPlaceholder
		Pager:    pagination.View{Hidden: true},
		Loading:  true,
	}
}

// Resolve replaces the placeholders with the page's items. An empty page
// yields a single empty element; the pager is built either way.
func (r *Renderer[T]) Resolve(page *client.Page[T]) Container[T] {
	var data []T
	var total, current int
	if page != nil {
		data, total, current = page.Data, page.TotalPages, page.CurrentPage
	}
	if r.Limit > 0 && len(data) > r.Limit {
		data = data[:r.Limit]
	}

	c := Container[T]{Pager: pagination.View{Hidden: true}}
	if len(data) == 0 {
		c.Elements = []Element[T]{{Kind: KindEmpty}}
	} else {
		c.Elements = make([]Element[T], len(data))
		for i, item := range data {
			c.Elements[i] = Element[T]{Kind: KindItem, Item: item}
		}
	}

	if r.Paginate != nil {
		c.Pager = r.Paginate(total, current)
	}
	return c
}

// Load fetches state and resolves it. A failed fetch yields a container
// with Err set and no elements.
func (r *Renderer[T]) Load(ctx context.Context, state pagination.State) Container[T] {
	page, err := r.Fetch(ctx, state)
	if err != nil {
		return Container[T]{Pager: pagination.View{Hidden: true}, Err: err}
	}
	return r.Resolve(page)
}

// Chunk splits items into consecutive groups of size; the last may be shorter
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = CarouselSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
