// Package styles maps the theme settings onto lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// Theme is the resolved colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	// Bar is the status bar background.
	Bar lipgloss.Color
	// Light is set for palettes meant for a light terminal.
	Light bool
}

type preset struct {
	primary, secondary lipgloss.Color
	light              bool
}

var presets = map[domain.ThemePreset]preset{
	domain.ThemeModern:    {"#6366F1", "#06B6D4", false},
	domain.ThemeRoyal:     {"#D4AF37", "#7C3AED", false},
	domain.ThemeCyberpunk: {"#F472B6", "#22D3EE", false},
	domain.ThemeNature:    {"#22C55E", "#A3E635", false},
	domain.ThemePaper:     {"#A16207", "#78716C", true},
	domain.ThemeSunset:    {"#F97316", "#F43F5E", false},
	domain.ThemeOcean:     {"#0EA5E9", "#14B8A6", false},
	domain.ThemeNebula:    {"#A855F7", "#EC4899", false},
	domain.ThemeFire:      {"#EF4444", "#F59E0B", false},
	domain.ThemeMagic:     {"#8B5CF6", "#F0ABFC", false},
	domain.ThemeAutumn:    {"#EA580C", "#B45309", false},
	domain.ThemeAurora:    {"#34D399", "#818CF8", false},
	domain.ThemeMidnight:  {"#3B82F6", "#64748B", false},
}

func dark(p preset) *Theme {
	return &Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Background: "#1E1E2E",
		Foreground: "#CDD6F4",
		Muted:      "#6C7086",
		Success:    "#A6E3A1",
		Warning:    "#F9E2AF",
		Error:      "#F38BA8",
		Border:     "#45475A",
		Bar:        "#181825",
	}
}

func light(p preset) *Theme {
	return &Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Background: "#FAF7F0",
		Foreground: "#292524",
		Muted:      "#8A817C",
		Success:    "#15803D",
		Warning:    "#B45309",
		Error:      "#B91C1C",
		Border:     "#D6D3D1",
		Bar:        "#E7E5E4",
		Light:      true,
	}
}

// DefaultTheme returns the modern preset.
func DefaultTheme() *Theme {
	return dark(presets[domain.ThemeModern])
}

// ThemeFor resolves settings into a palette. Unknown presets fall back to
// modern; in custom mode a non-empty accent replaces the primary colour.
func ThemeFor(settings domain.ThemeSettings) *Theme {
	p, ok := presets[settings.Preset]
	if !ok {
		p = presets[domain.ThemeModern]
	}

	theme := dark(p)
	if p.light {
		theme = light(p)
	}
	if settings.Mode == domain.ThemeModeCustom && settings.Accent != "" {
		theme.Primary = lipgloss.Color(settings.Accent)
	}
	return theme
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Match marks query occurrences in snippets.
	Match lipgloss.Style

	// User and Model colour the two sides of a chat transcript.
	User  lipgloss.Style
	Model lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles for theme, or for the default theme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Help:     fg(theme.Muted),

		Match: fg(theme.Warning).Bold(true).Underline(true),

		User:  fg(theme.Secondary).Bold(true),
		Model: fg(theme.Foreground),

		Error:   fg(theme.Error),
		Success: fg(theme.Success),
		Warning: fg(theme.Warning),

		InputField: rounded.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Border:     rounded,
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// MarkdownStyle names the glamour standard style matching the palette.
func (s *Styles) MarkdownStyle() string {
	if s.theme != nil && s.theme.Light {
		return "light"
	}
	return "dark"
}
