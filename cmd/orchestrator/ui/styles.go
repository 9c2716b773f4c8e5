// Package ui provides the terminal interface for the Media Orchestrator
// client: the screen router, the dashboard, and the two creation forms.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. The web client ships a dark theme; the terminal client
// supports both and detects the background when theme is "auto".
var (
	// Light mode colors
	LightForeground = lipgloss.Color("#111827")
	LightPrimary    = lipgloss.Color("#2563eb")
	LightAccent     = lipgloss.Color("#7c3aed")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#d1d5db")
	LightCard       = lipgloss.Color("#f3f4f6")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#f9fafb")
	DarkPrimary    = lipgloss.Color("#60a5fa")
	DarkAccent     = lipgloss.Color("#a78bfa")
	DarkMuted      = lipgloss.Color("#9ca3af")
	DarkBorder     = lipgloss.Color("#374151")
	DarkCard       = lipgloss.Color("#1f2937")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#ef4444")
	Green       = lipgloss.Color("#4ade80")
	Amber       = lipgloss.Color("#fbbf24")
	Blue        = lipgloss.Color("#38bdf8")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name. Anything other than "light"
// or "dark" auto-detects from the terminal.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG, defaulting to
// dark (the palette the web client ships).
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background".
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx >= 7 && bgIdx <= 15 && bgIdx != 8 {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds the styled components used across the screens.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Card       lipgloss.Style
	CardOn     lipgloss.Style
	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style
	Spinner    lipgloss.Style
	Overlay    lipgloss.Style
	Notice     lipgloss.Style
	Hashtag    lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 1).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 2).
			Bold(true).
			Underline(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Blue),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardOn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		BadgeMuted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		Notice: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Destructive).
			Padding(0, 2),

		Hashtag: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
