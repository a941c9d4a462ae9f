package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// Adaptive colors for light and dark terminals. Light mode colors are
// tuned for WCAG AA compliance (contrast ratio >= 4.5:1).
var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Activity kind badge backgrounds (saturated, white text)
	ColorKindCallBg    = lipgloss.AdaptiveColor{Light: "#36B37E", Dark: "#36B37E"}
	ColorKindEmailBg   = lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"}
	ColorKindMeetingBg = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#D9822B"}
	ColorKindNoteBg    = lipgloss.AdaptiveColor{Light: "#6B778C", Dark: "#6B778C"}
	ColorBadgeText     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
)

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// RenderKindBadge returns a colored square badge with a single letter
// for an activity kind. All badges are exactly 1 cell wide for
// consistent alignment.
func RenderKindBadge(kind string) string {
	var bg lipgloss.AdaptiveColor
	var label string

	switch kind {
	case "call":
		bg, label = ColorKindCallBg, "C"
	case "email":
		bg, label = ColorKindEmailBg, "E"
	case "meeting":
		bg, label = ColorKindMeetingBg, "M"
	case "note":
		bg, label = ColorKindNoteBg, "N"
	default:
		bg, label = ColorBgSubtle, "·"
	}

	return lipgloss.NewStyle().
		Foreground(ColorBadgeText).
		Background(bg).
		Bold(true).
		Render(label)
}

// RenderTagBadge renders a tag pill in the tag's own color when the
// backend supplies one, falling back to the primary accent.
func RenderTagBadge(name, hexColor string) string {
	fg := ThemeFg("#FFFFFF")
	bg := lipgloss.TerminalColor(ColorPrimary)
	if hexColor != "" {
		bg = ThemeBg(hexColor)
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1).
		Render(name)
}

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Choose color based on value
	var barColor lipgloss.AdaptiveColor
	if value >= 0.75 {
		barColor = t.Success
	} else if value >= 0.5 {
		barColor = t.Meeting
	} else if value >= 0.25 {
		barColor = t.Email
	} else {
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
