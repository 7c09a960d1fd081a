// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges, status text and the cart count badge

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func levelColors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	}
	return BadgeNeutralBg, BadgeNeutralFg
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := levelColors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := levelColors(level)
	style := lipgloss.NewStyle().Foreground(bg)

	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	}
	return style.Render("•")
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := levelColors(level)
	textStyle := lipgloss.NewStyle().Foreground(bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}

// OrderStatusLevel colors an order status
func OrderStatusLevel(status string) StatusLevel {
	switch status {
	case "delivered":
		return StatusOK
	case "pending", "processing":
		return StatusWarning
	case "cancelled":
		return StatusCritical
	case "shipped":
		return StatusInfo
	}
	return StatusNeutral
}

// CartBadge renders the navbar cart indicator; nothing when the cart is empty
func CartBadge(count int) string {
	text := cart.Badge(count)
	if text == "" {
		return ""
	}
	return icons.Cart.String() + " " + Badge(text, StatusInfo)
}
