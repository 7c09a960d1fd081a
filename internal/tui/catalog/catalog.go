// ABOUTME: Product catalog screen as a bubbletea model
// ABOUTME: Renders the listing container, pager and filter bar, and emits load requests

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/pagination"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
	"github.com/seefirst/seefirst-cli/internal/tui/widgets"
)

// LoadMsg asks the app to fetch the listing for State
type LoadMsg struct {
	State pagination.State
}

// SelectedMsg opens a product's detail view
type SelectedMsg struct {
	Product client.Product
}

// AddMsg adds one of a product to the cart
type AddMsg struct {
	Product client.Product
}

// Conditions the catalog cycles through, "" meaning any
var Conditions = []string{"", "new", "used", "refurbished"}

// Catalog is the product listing screen
type Catalog struct {
	state      pagination.State
	container  listing.Container[client.Product]
	categories []client.Category
	cursor     int
	width      int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
}

// New creates a catalog showing placeholders for the first page
func New(placeholders listing.Container[client.Product]) *Catalog {
	ti := textinput.New()
	ti.Placeholder = "Search products"
	ti.Prompt = icons.Search.String() + " "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Catalog{
		state:     pagination.State{Page: 1},
		container: placeholders,
		search:    ti,
		spinner:   sp,
	}
}

// State is the current page and filters
func (c *Catalog) State() pagination.State {
	return c.state
}

// SetContainer shows a resolved (or loading) container
func (c *Catalog) SetContainer(container listing.Container[client.Product]) {
	c.container = container
	if n := len(container.Items()); c.cursor >= n {
		c.cursor = max(0, n-1)
	}
}

// SetCategories fills the category filter choices
func (c *Catalog) SetCategories(categories []client.Category) {
	c.categories = categories
}

// SetWidth updates the render width
func (c *Catalog) SetWidth(width int) {
	c.width = width
}

// Searching reports whether the search box has focus
func (c *Catalog) Searching() bool {
	return c.searching
}

// Selected returns the product under the cursor
func (c *Catalog) Selected() (client.Product, bool) {
	items := c.container.Items()
	if c.cursor < 0 || c.cursor >= len(items) {
		return client.Product{}, false
	}
	return items[c.cursor], true
}

// Init implements tea.Model
func (c *Catalog) Init() tea.Cmd {
	return c.spinner.Tick
}

// Update implements tea.Model
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.container.Loading {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if c.searching {
			return c.updateSearch(msg)
		}
		return c.updateKeys(msg)
	}
	return c, nil
}

func (c *Catalog) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		c.searching = false
		c.search.Blur()
		f := c.state.Filters
		f.Search = strings.TrimSpace(c.search.Value())
		return c, c.load(c.state.WithFilters(f))
	case "esc":
		c.searching = false
		c.search.Blur()
		c.search.SetValue(c.state.Filters.Search)
		return c, nil
	}
	var cmd tea.Cmd
	c.search, cmd = c.search.Update(msg)
	return c, cmd
}

func (c *Catalog) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := c.container.Items()

	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(items)-1 {
			c.cursor++
		}
	case "left", "h", "p":
		if page, ok := c.container.Pager.Prev(); ok {
			return c, c.load(c.state.WithPage(page))
		}
	case "right", "l", "n":
		if page, ok := c.container.Pager.Next(); ok {
			return c, c.load(c.state.WithPage(page))
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(msg.String())
		if page, ok := c.container.Pager.Page(n); ok {
			return c, c.load(c.state.WithPage(page))
		}
	case "G":
		if page, ok := c.container.Pager.Last(); ok {
			return c, c.load(c.state.WithPage(page))
		}
	case "c":
		f := c.state.Filters
		f.Category = c.nextCategory(f.Category)
		return c, c.load(c.state.WithFilters(f))
	case "s":
		f := c.state.Filters
		f.Sort = next(pagination.SortKeys, f.Sort)
		return c, c.load(c.state.WithFilters(f))
	case "o":
		f := c.state.Filters
		f.Condition = next(Conditions, f.Condition)
		return c, c.load(c.state.WithFilters(f))
	case "/":
		c.searching = true
		c.search.SetValue(c.state.Filters.Search)
		return c, c.search.Focus()
	case "r":
		return c, c.load(c.state)
	case "enter":
		if p, ok := c.Selected(); ok {
			return c, func() tea.Msg { return SelectedMsg{Product: p} }
		}
	case "a":
		if p, ok := c.Selected(); ok {
			return c, func() tea.Msg { return AddMsg{Product: p} }
		}
	}
	return c, nil
}

// load records the new state and asks the app to fetch it
func (c *Catalog) load(state pagination.State) tea.Cmd {
	c.state = state
	c.cursor = 0
	return func() tea.Msg { return LoadMsg{State: state} }
}

func (c *Catalog) nextCategory(current string) string {
	ids := []string{""}
	for _, cat := range c.categories {
		ids = append(ids, strconv.FormatInt(cat.ID, 10))
	}
	return next(ids, current)
}

func (c *Catalog) categoryName(id string) string {
	if id == "" || id == pagination.CategoryAll {
		return "All"
	}
	for _, cat := range c.categories {
		if strconv.FormatInt(cat.ID, 10) == id {
			return cat.Name
		}
	}
	return "#" + id
}

// next returns the value after current in values, wrapping around
func next(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func sortLabel(key string) string {
	switch key {
	case pagination.SortNewest:
		return "Newest"
	case pagination.SortPriceAsc:
		return "Price: low to high"
	case pagination.SortPriceDesc:
		return "Price: high to low"
	}
	return "Default"
}

// View implements tea.Model
func (c *Catalog) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Tag.String() + " Products"))
	sb.WriteString("\n")
	sb.WriteString(c.filterBar())
	sb.WriteString("\n")
	if c.searching {
		sb.WriteString(c.search.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if c.container.Err != nil {
		if msg := client.UserMessage(c.container.Err); msg != "" {
			sb.WriteString(styles.StatusCritical.Render(msg))
		}
		return sb.String()
	}

	for i, el := range c.container.Elements {
		sb.WriteString(c.renderElement(i, el))
		sb.WriteString("\n")
	}

	if pager := widgets.Pager(c.container.Pager); pager != "" {
		sb.WriteString("\n")
		sb.WriteString(pager)
	}
	return sb.String()
}

func (c *Catalog) filterBar() string {
	f := c.state.Filters
	muted := lipgloss.NewStyle().Foreground(styles.Muted)

	parts := []string{
		icons.Category.String() + " " + c.categoryName(f.Category),
		icons.Sort.String() + " " + sortLabel(f.Sort),
	}
	if f.Condition != "" {
		parts = append(parts, icons.Filter.String()+" "+f.Condition)
	}
	if f.Search != "" {
		parts = append(parts, icons.Search.String()+" \""+f.Search+"\"")
	}
	return muted.Render(strings.Join(parts, "   "))
}

func (c *Catalog) renderElement(i int, el listing.Element[client.Product]) string {
	switch el.Kind {
	case listing.KindPlaceholder:
		prefix := "  "
		if i == 0 {
			prefix = c.spinner.View() + " "
		}
		return prefix + styles.Shimmer.Render(strings.Repeat("░", 28)+"  "+strings.Repeat("░", 10))

	case listing.KindEmpty:
		return styles.Subtitle.Render("No products found.")
	}

	p := el.Item
	index := 0
	for j := 0; j < i; j++ {
		if c.container.Elements[j].Kind == listing.KindItem {
			index++
		}
	}

	cursor := "  "
	nameStyle := lipgloss.NewStyle()
	if index == c.cursor {
		cursor = styles.Selected.Render("> ")
		nameStyle = styles.Selected
	}

	name := nameStyle.Render(fmt.Sprintf("%-30s", truncate(p.Name, 30)))
	line := cursor + name + " " + styles.Price.Render(FormatPrice(p))
	if p.Condition != "" {
		line += "  " + widgets.Badge(p.Condition, widgets.StatusNeutral)
	}
	return line
}

// FormatPrice renders a product price with the currency sign
func FormatPrice(p client.Product) string {
	return styles.Currency + p.Price.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
