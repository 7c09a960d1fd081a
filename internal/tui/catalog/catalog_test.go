// ABOUTME: Tests for the catalog screen
// ABOUTME: Verifies load requests keep filters and elements render per kind

package catalog

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/pagination"
)

func renderer() *listing.Renderer[client.Product] {
	return &listing.Renderer[client.Product]{Limit: 10, Paginate: pagination.Build}
}

func resolved(total, current int, products ...client.Product) listing.Container[client.Product] {
	return renderer().Resolve(&client.Page[client.Product]{Data: products, TotalPages: total, CurrentPage: current})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadState(t *testing.T, cmd tea.Cmd) pagination.State {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg, ok := cmd().(LoadMsg)
	if !ok {
		t.Fatalf("expected LoadMsg, got %T", cmd())
	}
	return msg.State
}

func TestNextPageKeepsFilters(t *testing.T) {
	c := New(renderer().Placeholders())
	c.state = pagination.State{Page: 1, Filters: pagination.Filters{Category: "2", Sort: pagination.SortPriceAsc}}
	c.SetContainer(resolved(3, 1, client.Product{ID: 1, Name: "Lamp"}))

	_, cmd := c.Update(key("n"))
	st := loadState(t, cmd)
	if st.Page != 2 {
		t.Errorf("expected page 2, got %d", st.Page)
	}
	if st.Filters.Category != "2" || st.Filters.Sort != pagination.SortPriceAsc {
		t.Errorf("expected filters kept, got %+v", st.Filters)
	}
}

func TestPageKeysJumpAndKeepFilters(t *testing.T) {
	filters := pagination.Filters{Category: "2", Condition: "used", Search: "lamp"}

	tests := []struct {
		key      string
		wantPage int
	}{
		{"3", 3},
		{"5", 5},
		{"G", 5},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := New(renderer().Placeholders())
			c.state = pagination.State{Page: 1, Filters: filters}
			c.SetContainer(resolved(5, 1, client.Product{ID: 1, Name: "Lamp"}))

			_, cmd := c.Update(key(tt.key))
			st := loadState(t, cmd)
			if st.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, st.Page)
			}
			if st.Filters != filters {
				t.Errorf("expected filters kept, got %+v", st.Filters)
			}
			if c.State() != st {
				t.Errorf("expected catalog state %+v, got %+v", st, c.State())
			}
		})
	}
}

func TestPageKeyBeyondLastPageDoesNothing(t *testing.T) {
	c := New(renderer().Placeholders())
	c.SetContainer(resolved(3, 1, client.Product{ID: 1, Name: "Lamp"}))

	if _, cmd := c.Update(key("7")); cmd != nil {
		t.Error("expected no load for a page that does not exist")
	}

	c.SetContainer(resolved(1, 1, client.Product{ID: 1, Name: "Lamp"}))
	if _, cmd := c.Update(key("1")); cmd != nil {
		t.Error("expected no load when the pager is hidden")
	}
}

func TestPrevOnFirstPageDoesNothing(t *testing.T) {
	c := New(renderer().Placeholders())
	c.SetContainer(resolved(3, 1, client.Product{ID: 1}))

	if _, cmd := c.Update(key("p")); cmd != nil {
		t.Error("expected no load on disabled previous control")
	}
}

func TestSortCycleResetsPage(t *testing.T) {
	c := New(renderer().Placeholders())
	c.state = pagination.State{Page: 3}

	_, cmd := c.Update(key("s"))
	st := loadState(t, cmd)
	if st.Page != 1 || st.Filters.Sort != pagination.SortNewest {
		t.Errorf("expected newest on page 1, got %+v", st)
	}
}

func TestCategoryCycle(t *testing.T) {
	c := New(renderer().Placeholders())
	c.SetCategories([]client.Category{{ID: 4, Name: "Sofas"}, {ID: 9, Name: "Beds"}})

	_, cmd := c.Update(key("c"))
	if st := loadState(t, cmd); st.Filters.Category != "4" {
		t.Errorf("expected category 4, got %q", st.Filters.Category)
	}
	if !strings.Contains(c.View(), "Sofas") {
		t.Error("expected category name in filter bar")
	}
}

func TestSearchSubmit(t *testing.T) {
	c := New(renderer().Placeholders())
	c.Update(key("/"))
	if !c.Searching() {
		t.Fatal("expected search focus")
	}
	c.Update(key("desk"))
	_, cmd := c.Update(key("enter"))

	if st := loadState(t, cmd); st.Filters.Search != "desk" {
		t.Errorf("expected search desk, got %q", st.Filters.Search)
	}
	if c.Searching() {
		t.Error("expected search to lose focus")
	}
}

func TestSelectAndAdd(t *testing.T) {
	c := New(renderer().Placeholders())
	c.SetContainer(resolved(1, 1,
		client.Product{ID: 1, Name: "Lamp"},
		client.Product{ID: 2, Name: "Desk"},
	))

	c.Update(key("j"))
	_, cmd := c.Update(key("enter"))
	if msg, ok := cmd().(SelectedMsg); !ok || msg.Product.ID != 2 {
		t.Errorf("expected Desk selected, got %#v", cmd())
	}

	_, cmd = c.Update(key("a"))
	if msg, ok := cmd().(AddMsg); !ok || msg.Product.ID != 2 {
		t.Errorf("expected Desk added, got %#v", cmd())
	}
}

func TestViewStates(t *testing.T) {
	c := New(renderer().Placeholders())
	if !strings.Contains(c.View(), "░") {
		t.Error("expected placeholders while loading")
	}

	c.SetContainer(resolved(0, 1))
	if !strings.Contains(c.View(), "No products found.") {
		t.Error("expected empty element")
	}

	c.SetContainer(resolved(2, 1, client.Product{ID: 1, Name: "Lamp", Price: decimal.RequireFromString("1500")}))
	view := c.View()
	if !strings.Contains(view, "Lamp") || !strings.Contains(view, "৳1500.00") {
		t.Errorf("expected product row, got %q", view)
	}
	if !strings.Contains(view, "Next") {
		t.Error("expected pager")
	}

	c.SetContainer(listing.Container[client.Product]{Err: &client.APIError{StatusCode: 500, Message: "Database unavailable"}})
	if !strings.Contains(c.View(), "Database unavailable") {
		t.Error("expected backend message")
	}
}
