// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, panels, text styles and the huh form theme

package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	BgDark    = lipgloss.Color("#1F2937") // Dark gray

	// Colors - Extended palette
	Accent  = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface = lipgloss.Color("#374151") // Placeholder shimmer
	Info    = lipgloss.Color("#3B82F6") // Blue - informational

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Price is how amounts of money are shown
	Price = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Shimmer renders loading placeholders
	Shimmer = lipgloss.NewStyle().
		Foreground(Surface)

	// Selected marks the row under the cursor
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Currency is prefixed to every displayed amount
const Currency = "৳"

// FormTheme returns the huh theme shared by login and checkout forms
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(Muted).
		Background(Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(Muted)

	return t
}
