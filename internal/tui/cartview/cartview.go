// ABOUTME: Cart screen as a bubbletea model
// ABOUTME: Lists lines with totals and collects customer details for checkout

package cartview

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

// QuantityMsg changes a line's quantity by Delta
type QuantityMsg struct {
	ProductID int64
	Delta     int
}

// RemoveMsg deletes a line
type RemoveMsg struct {
	ProductID int64
}

// ClearMsg empties the cart
type ClearMsg struct{}

// CheckoutMsg places orders for the cart
type CheckoutMsg struct {
	Customer cart.Customer
}

// BackMsg returns to the catalog
type BackMsg struct{}

// CartView is the cart screen
type CartView struct {
	lines  []cart.Line
	total  decimal.Decimal
	cursor int

	form      *huh.Form
	name      string
	phone     string
	placing   bool
	message   string
	messageOK bool
}

// New creates a cart screen
func New() *CartView {
	return &CartView{total: decimal.Zero}
}

// SetLines refreshes the displayed cart
func (v *CartView) SetLines(lines []cart.Line, total decimal.Decimal) {
	v.lines = lines
	v.total = total
	if v.cursor >= len(lines) {
		v.cursor = max(0, len(lines)-1)
	}
}

// SetResult ends a checkout attempt with a message
func (v *CartView) SetResult(msg string, ok bool) {
	v.placing = false
	v.form = nil
	v.message = msg
	v.messageOK = ok
}

// CheckingOut reports whether the customer form is open
func (v *CartView) CheckingOut() bool {
	return v.form != nil
}

func (v *CartView) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(&v.name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Phone").
				Placeholder("01XXXXXXXXX").
				Value(&v.phone).
				Validate(notBlank("phone")),
		).Title("Checkout").
			Description("One order is placed per product"),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// Init implements tea.Model
func (v *CartView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *CartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.placing {
		return v, nil
	}
	if v.form != nil {
		return v.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.lines)-1 {
			v.cursor++
		}
	case "+", "=":
		return v, v.lineCmd(func(id int64) tea.Msg { return QuantityMsg{ProductID: id, Delta: 1} })
	case "-":
		return v, v.lineCmd(func(id int64) tea.Msg { return QuantityMsg{ProductID: id, Delta: -1} })
	case "d":
		return v, v.lineCmd(func(id int64) tea.Msg { return RemoveMsg{ProductID: id} })
	case "x":
		if len(v.lines) > 0 {
			return v, func() tea.Msg { return ClearMsg{} }
		}
	case "c":
		if len(v.lines) > 0 {
			v.message = ""
			v.form = v.createForm()
			return v, v.form.Init()
		}
	case "b", "esc":
		return v, func() tea.Msg { return BackMsg{} }
	}
	return v, nil
}

func (v *CartView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		v.form = nil
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.placing = true
		customer := cart.Customer{Name: strings.TrimSpace(v.name), Phone: strings.TrimSpace(v.phone)}
		return v, func() tea.Msg { return CheckoutMsg{Customer: customer} }
	}
	return v, cmd
}

func (v *CartView) lineCmd(build func(id int64) tea.Msg) tea.Cmd {
	if v.cursor < 0 || v.cursor >= len(v.lines) {
		return nil
	}
	id := v.lines[v.cursor].ProductID
	return func() tea.Msg { return build(id) }
}

// View implements tea.Model
func (v *CartView) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Cart.String() + " Cart"))
	sb.WriteString("\n")

	if v.message != "" {
		style := styles.StatusCritical
		if v.messageOK {
			style = styles.StatusOK
		}
		sb.WriteString(style.Render(v.message))
		sb.WriteString("\n\n")
	}

	if len(v.lines) == 0 {
		sb.WriteString(styles.Subtitle.Render("Your cart is empty."))
		return sb.String()
	}

	muted := lipgloss.NewStyle().Foreground(styles.Muted)
	for i, l := range v.lines {
		cursor := "  "
		if i == v.cursor && v.form == nil {
			cursor = styles.Selected.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%-28s %3d × %s  %s\n",
			cursor,
			l.Name,
			l.Quantity,
			muted.Render(styles.Currency+l.UnitPrice.StringFixed(2)),
			styles.Price.Render(styles.Currency+l.Subtotal().StringFixed(2)),
		))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render("Total: ") + styles.Price.Render(styles.Currency+v.total.StringFixed(2)))
	sb.WriteString("\n\n")

	switch {
	case v.placing:
		sb.WriteString(styles.Subtitle.Render("Placing orders..."))
	case v.form != nil:
		sb.WriteString(v.form.View())
	}
	return sb.String()
}
