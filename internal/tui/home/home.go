// ABOUTME: Storefront home screen: new arrivals carousel over featured products
// ABOUTME: Left/right turn the carousel; the cursor walks the visible slide then the featured list

package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/storefront"
	"github.com/seefirst/seefirst-cli/internal/tui/catalog"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

// SelectedMsg opens a product's detail view
type SelectedMsg struct {
	Product client.Product
}

// AddMsg adds one of a product to the cart
type AddMsg struct {
	Product client.Product
}

// BrowseMsg asks for the full catalog
type BrowseMsg struct{}

// Home is the storefront landing screen
type Home struct {
	page   storefront.Home
	slide  int
	cursor int
}

// New creates a home screen showing placeholders
func New() *Home {
	return &Home{page: storefront.Placeholders()}
}

// SetPage shows loaded (or loading) sections
func (h *Home) SetPage(page storefront.Home) {
	h.page = page
	h.slide = 0
	h.cursor = 0
}

// Slide is the index of the visible carousel slide
func (h *Home) Slide() int {
	return h.slide
}

// visible is the current slide followed by the featured products
func (h *Home) visible() []client.Product {
	var out []client.Product
	if slides := h.page.Slides(); h.slide < len(slides) {
		out = append(out, slides[h.slide]...)
	}
	return append(out, h.page.Featured.Items()...)
}

// Selected returns the product under the cursor
func (h *Home) Selected() (client.Product, bool) {
	items := h.visible()
	if h.cursor < 0 || h.cursor >= len(items) {
		return client.Product{}, false
	}
	return items[h.cursor], true
}

// Init implements tea.Model
func (h *Home) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	slides := len(h.page.Slides())
	switch key.String() {
	case "right", "l":
		if slides > 1 {
			h.slide = (h.slide + 1) % slides
			h.cursor = 0
		}
	case "left", "h":
		if slides > 1 {
			h.slide = (h.slide + slides - 1) % slides
			h.cursor = 0
		}
	case "down", "j":
		if h.cursor < len(h.visible())-1 {
			h.cursor++
		}
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "enter":
		if p, ok := h.Selected(); ok {
			return h, func() tea.Msg { return SelectedMsg{Product: p} }
		}
	case "a":
		if p, ok := h.Selected(); ok {
			return h, func() tea.Msg { return AddMsg{Product: p} }
		}
	case "b":
		return h, func() tea.Msg { return BrowseMsg{} }
	}
	return h, nil
}

// View implements tea.Model
func (h *Home) View() string {
	var sb strings.Builder

	if err := h.page.Err(); err != nil && !client.IsUnauthorized(err) {
		sb.WriteString(styles.StatusCritical.Render(client.UserMessage(err)))
		sb.WriteString("\n\n")
	}

	slides := h.page.Slides()
	title := icons.Tag.String() + " New Arrivals"
	if len(slides) > 1 {
		title += lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("  ◀ %d/%d ▶", h.slide+1, len(slides)))
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	offset := 0
	if h.page.NewArrivals.Loading {
		sb.WriteString(placeholderRows(listing.CarouselSize))
	} else if len(slides) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products found."))
		sb.WriteString("\n")
	} else {
		for i, p := range slides[h.slide] {
			sb.WriteString(h.row(i, p))
			sb.WriteString("\n")
		}
		offset = len(slides[h.slide])
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Title.Render(icons.Store.String() + " Featured"))
	sb.WriteString("\n")

	switch {
	case h.page.Featured.Loading:
		sb.WriteString(placeholderRows(len(h.page.Featured.Elements)))
	case h.page.Featured.Empty() || h.page.Featured.Err != nil:
		sb.WriteString(styles.Subtitle.Render("No products found."))
		sb.WriteString("\n")
	default:
		for i, p := range h.page.Featured.Items() {
			sb.WriteString(h.row(offset+i, p))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (h *Home) row(index int, p client.Product) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle()
	if index == h.cursor {
		cursor = styles.Selected.Render("> ")
		nameStyle = styles.Selected
	}
	return cursor + nameStyle.Render(fmt.Sprintf("%-30s", truncate(p.Name, 30))) + " " +
		styles.Price.Render(catalog.FormatPrice(p))
}

func placeholderRows(n int) string {
	row := "  " + styles.Shimmer.Render(strings.Repeat("░", 28)+"  "+strings.Repeat("░", 10)) + "\n"
	return strings.Repeat(row, n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
