// ABOUTME: Product detail screen as a bubbletea model
// ABOUTME: Shows price, category, condition, image links and the home preview note

package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
	"github.com/seefirst/seefirst-cli/internal/tui/widgets"
)

// PreviewFee is charged for a home preview and refunded on purchase
const PreviewFee = 200

// AddMsg adds one of the shown product to the cart
type AddMsg struct {
	Product client.Product
}

// BackMsg returns to the catalog
type BackMsg struct{}

// Detail is the product detail screen
type Detail struct {
	product   *client.Product
	uploadURL func(string) string
	err       error
	width     int
}

// New creates an empty detail screen; uploadURL resolves image names
func New(uploadURL func(string) string) *Detail {
	return &Detail{uploadURL: uploadURL}
}

// SetProduct shows a loaded product, or nil while loading
func (d *Detail) SetProduct(p *client.Product) {
	d.product = p
	d.err = nil
}

// SetError shows a failed load
func (d *Detail) SetError(err error) {
	d.product = nil
	d.err = err
}

// SetWidth updates the render width
func (d *Detail) SetWidth(width int) {
	d.width = width
}

// Product returns the shown product, if any
func (d *Detail) Product() *client.Product {
	return d.product
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "a":
		if d.product != nil {
			p := *d.product
			return d, func() tea.Msg { return AddMsg{Product: p} }
		}
	case "b", "esc":
		return d, func() tea.Msg { return BackMsg{} }
	}
	return d, nil
}

// View implements tea.Model
func (d *Detail) View() string {
	if d.err != nil {
		msg := client.UserMessage(d.err)
		if msg == "" {
			msg = "Product unavailable."
		}
		return styles.StatusCritical.Render(msg)
	}
	if d.product == nil {
		return styles.Subtitle.Render("Loading product...")
	}

	p := d.product
	muted := lipgloss.NewStyle().Foreground(styles.Muted)

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(styles.Price.Render(styles.Currency + p.Price.StringFixed(2)))
	if p.Condition != "" {
		sb.WriteString("  " + widgets.Badge(p.Condition, widgets.StatusNeutral))
	}
	sb.WriteString("\n")
	if p.Category != "" {
		sb.WriteString(muted.Render(icons.Category.String() + " " + p.Category))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if p.Description != "" {
		desc := p.Description
		if d.width > 8 {
			desc = lipgloss.NewStyle().Width(d.width - 4).Render(desc)
		}
		sb.WriteString(desc)
		sb.WriteString("\n\n")
	}

	images := p.Images()
	if len(images) == 0 {
		sb.WriteString(muted.Render(icons.Image.String() + " No images"))
		sb.WriteString("\n")
	}
	for _, name := range images {
		sb.WriteString(muted.Render(icons.Image.String() + " " + d.uploadURL(name)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(widgets.StatusText(
		fmt.Sprintf("Home preview available for %s%d, refunded when you buy.", styles.Currency, PreviewFee),
		widgets.StatusInfo,
	))
	return sb.String()
}
