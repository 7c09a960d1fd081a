// ABOUTME: Pagination controls and the filter state threaded through page changes
// ABOUTME: Build turns total/current pages into a view model of prev, page and next controls

package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Sort keys understood by the product listing endpoint
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// SortKeys lists the accepted sort values, "" meaning backend default
var SortKeys = []string{"", SortNewest, SortPriceAsc, SortPriceDesc}

// CategoryAll is the catalog's "no category filter" choice
const CategoryAll = "all"

// Filters are the listing's current filter selections
type Filters struct {
	Category  string `json:"category,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Condition string `json:"condition,omitempty"`
	Search    string `json:"search,omitempty"`
}

// Validate rejects sort keys the backend does not know
func (f Filters) Validate() error {
	for _, k := range SortKeys {
		if f.Sort == k {
			return nil
		}
	}
	return fmt.Errorf("unknown sort %q (want %s)", f.Sort, strings.Join(SortKeys[1:], ", "))
}

// Values encodes the filters as listing query parameters, omitting unset ones
func (f Filters) Values() url.Values {
	q := url.Values{}
	if c := strings.TrimSpace(f.Category); c != "" && c != CategoryAll {
		q.Set("category_id", c)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Condition != "" {
		q.Set("condition", f.Condition)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// State is everything a listing request depends on
type State struct {
	Page    int
	Filters Filters
}

// WithPage moves to another page keeping the filters
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// WithFilters replaces the filters and returns to the first page
func (s State) WithFilters(f Filters) State {
	s.Filters = f
	s.Page = 1
	return s
}

// Kind distinguishes control types in a View
type Kind int

const (
	KindPrev Kind = iota
	KindPage
	KindNext
)

// Control is one clickable pager element
type Control struct {
	Kind     Kind
	Label    string
	Page     int
	Active   bool
	Disabled bool
}

// View is the pager view model. Hidden views have no controls.
type View struct {
	Hidden   bool
	Total    int
	Current  int
	Controls []Control
}

// Build derives the pager for totalPages and currentPage. One page or none
// means no pager at all. currentPage is clamped into range.
func Build(totalPages, currentPage int) View {
	if totalPages <= 1 {
		return View{Hidden: true, Total: max(totalPages, 0), Current: 1}
	}

	current := min(max(currentPage, 1), totalPages)
	controls := make([]Control, 0, totalPages+2)

	controls = append(controls, Control{
		Kind:     KindPrev,
		Label:    "Previous",
		Page:     current - 1,
		Disabled: current == 1,
	})
	for p := 1; p <= totalPages; p++ {
		controls = append(controls, Control{
			Kind:   KindPage,
			Label:  strconv.Itoa(p),
			Page:   p,
			Active: p == current,
		})
	}
	controls = append(controls, Control{
		Kind:     KindNext,
		Label:    "Next",
		Page:     current + 1,
		Disabled: current == totalPages,
	})

	return View{Total: totalPages, Current: current, Controls: controls}
}

// Target returns the page control i leads to. Disabled and out of range
// controls do nothing.
func (v View) Target(i int) (int, bool) {
	if i < 0 || i >= len(v.Controls) {
		return 0, false
	}
	c := v.Controls[i]
	if c.Disabled {
		return 0, false
	}
	return c.Page, true
}

// Page returns the target of the numbered control for page n
func (v View) Page(n int) (int, bool) {
	for i, c := range v.Controls {
		if c.Kind == KindPage && c.Page == n {
			return v.Target(i)
		}
	}
	return 0, false
}

// Last returns the target of the highest numbered control
func (v View) Last() (int, bool) {
	return v.Page(v.Total)
}

// Prev returns the previous page if there is one
func (v View) Prev() (int, bool) {
	return v.find(KindPrev)
}

// Next returns the next page if there is one
func (v View) Next() (int, bool) {
	return v.find(KindNext)
}

func (v View) find(kind Kind) (int, bool) {
	for i, c := range v.Controls {
		if c.Kind == kind {
			return v.Target(i)
		}
	}
	return 0, false
}
