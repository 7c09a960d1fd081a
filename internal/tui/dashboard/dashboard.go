// ABOUTME: Dashboard component for the admin and vendor panels
// ABOUTME: Renders summary metric blocks or the vendor approval banner

package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/summary"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
	"github.com/seefirst/seefirst-cli/internal/tui/widgets"
)

// Dashboard displays the admin or vendor summary
type Dashboard struct {
	admin  *summary.Admin
	vendor *summary.Vendor
	err    error
	width  int
	height int
}

// New creates an empty dashboard
func New(width, height int) *Dashboard {
	return &Dashboard{width: width, height: height}
}

// SetAdmin shows an admin summary
func (d *Dashboard) SetAdmin(s summary.Admin) {
	d.admin, d.vendor, d.err = &s, nil, nil
}

// SetVendor shows a vendor summary
func (d *Dashboard) SetVendor(s summary.Vendor) {
	d.admin, d.vendor, d.err = nil, &s, nil
}

// SetError shows a failed load
func (d *Dashboard) SetError(err error) {
	d.admin, d.vendor, d.err = nil, nil, err
}

// Reset returns to the loading state
func (d *Dashboard) Reset() {
	d.admin, d.vendor, d.err = nil, nil, nil
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var body string
	switch {
	case d.err != nil:
		msg := client.UserMessage(d.err)
		if msg == "" {
			msg = client.GenericErrorMessage
		}
		body = styles.StatusCritical.Render(msg)
	case d.admin != nil:
		body = d.viewAdmin()
	case d.vendor != nil:
		body = d.viewVendor()
	default:
		body = styles.Subtitle.Render("Loading dashboard...")
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Render(body)
}

var metricIcons = []icons.Icon{icons.Money, icons.Order, icons.User, icons.Tag, icons.Preview}

func (d *Dashboard) viewAdmin() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Admin Dashboard"))
	sb.WriteString("\n\n")

	cfg := widgets.DefaultMetricBlockConfig()
	var blocks []string
	for i, m := range d.admin.Metrics() {
		value := m.Display()
		if i == 0 && m.Err == nil && m.Value != "" {
			value = styles.Currency + value
		}
		blocks = append(blocks, widgets.MetricBlock(metricIcons[i], m.Label, value, m.Detail, cfg))
	}

	perRow := 3
	if d.width > 0 && d.width < cfg.Width*perRow {
		perRow = max(1, d.width/cfg.Width)
	}
	for start := 0; start < len(blocks); start += perRow {
		end := min(start+perRow, len(blocks))
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks[start:end]...))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (d *Dashboard) viewVendor() string {
	v := d.vendor
	var sb strings.Builder
	title := "Vendor Dashboard"
	if v.StoreName != "" {
		title = v.StoreName
	}
	sb.WriteString(styles.Title.Render(icons.Store.String() + " " + title))
	sb.WriteString("\n\n")

	if v.Approved {
		sb.WriteString(widgets.StatusText("Your store is approved and visible to customers.", widgets.StatusOK))
	} else {
		sb.WriteString(widgets.StatusText("Your store is awaiting admin approval.", widgets.StatusWarning))
	}
	sb.WriteString("\n\n")

	cfg := widgets.DefaultMetricBlockConfig()
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.MetricBlock(icons.Tag, v.Products.Label, v.Products.Display(), "", cfg),
		widgets.MetricBlock(icons.Order, v.PendingOrders.Label, v.PendingOrders.Display(), "", cfg),
	))
	return sb.String()
}
