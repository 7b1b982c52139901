package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, highlights
	ColorHighlight = "205" // Magenta - selected rows, borders
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - dimmed text, hints
	ColorText      = "252" // Light gray - normal text
	ColorWarning   = "208" // Orange - degraded states
	ColorOK        = "40"  // Green - online/healthy
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title     lipgloss.Style // Bold accent - screen titles
	TabActive lipgloss.Style // Selected tab label
	TabIdle   lipgloss.Style // Unselected tab label
	Selected  lipgloss.Style // Highlighted rows
	Normal    lipgloss.Style // Normal text
	Muted     lipgloss.Style // Dimmed text
	Hint      lipgloss.Style // Help/hint line
	Error     lipgloss.Style // Error text
	Warning   lipgloss.Style // Degraded/warning text
	OK        lipgloss.Style // Healthy/online text
	Header    lipgloss.Style // Table header row
	Box       lipgloss.Style // Standard bordered box
	BoxDanger lipgloss.Style // Error box
	Empty     lipgloss.Style // Empty-state text
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true),
	TabIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	OK: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorOK)),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}

// ModalStyles contains shared style definitions for modals.
var ModalStyles = struct {
	Box     lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Help    lipgloss.Style
	Error   lipgloss.Style
	Focused lipgloss.Style
}{
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Title:   Styles.Title,
	Label:   lipgloss.NewStyle(),
	Help:    Styles.Hint,
	Error:   Styles.Error,
	Focused: Styles.Selected,
}

// siteColor maps a tuiColor site variable value to a lipgloss color. Unknown
// values fall back to the normal text color.
func siteColor(name string) lipgloss.Color {
	switch name {
	case "red":
		return lipgloss.Color("196")
	case "green":
		return lipgloss.Color("40")
	case "yellow":
		return lipgloss.Color("226")
	case "blue":
		return lipgloss.Color("33")
	case "magenta":
		return lipgloss.Color("201")
	case "cyan":
		return lipgloss.Color("51")
	case "orange":
		return lipgloss.Color("208")
	default:
		return lipgloss.Color(ColorText)
	}
}
