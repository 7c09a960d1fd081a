// ABOUTME: Pager widget rendering pagination controls on one line
// ABOUTME: Disabled ends are dimmed and the active page is highlighted

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/pagination"
)

var (
	pagerActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Padding(0, 1)
	pagerPage     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Padding(0, 1)
	pagerDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Padding(0, 1)
)

// Pager renders the controls of v, or "" when the pager is hidden
func Pager(v pagination.View) string {
	if v.Hidden {
		return ""
	}

	parts := make([]string, 0, len(v.Controls))
	for _, c := range v.Controls {
		label := c.Label
		switch c.Kind {
		case pagination.KindPrev:
			label = "« " + label
		case pagination.KindNext:
			label = label + " »"
		}

		switch {
		case c.Disabled:
			parts = append(parts, pagerDisabled.Render(label))
		case c.Active:
			parts = append(parts, pagerActive.Render(label))
		default:
			parts = append(parts, pagerPage.Render(label))
		}
	}
	return strings.Join(parts, "")
}
