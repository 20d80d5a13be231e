package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

func TestThemeFor_EveryPresetIsDefined(t *testing.T) {
	for _, name := range domain.AllThemePresets() {
		t.Run(string(name), func(t *testing.T) {
			p, ok := presets[name]
			require.True(t, ok, "preset has no palette")

			theme := ThemeFor(domain.ThemeSettings{Mode: domain.ThemeModePreset, Preset: name})
			assert.Equal(t, p.primary, theme.Primary)
			assert.Equal(t, p.secondary, theme.Secondary)
			assert.NotEqual(t, theme.Foreground, theme.Background)
		})
	}
}

func TestThemeFor_PaperIsLight(t *testing.T) {
	paper := ThemeFor(domain.ThemeSettings{Preset: domain.ThemePaper})
	modern := ThemeFor(domain.ThemeSettings{Preset: domain.ThemeModern})

	assert.Equal(t, lipgloss.Color("#FAF7F0"), paper.Background)
	assert.NotEqual(t, modern.Background, paper.Background)
	assert.True(t, paper.Light)
	assert.False(t, modern.Light)

	assert.Equal(t, "light", NewStyles(paper).MarkdownStyle())
	assert.Equal(t, "dark", NewStyles(modern).MarkdownStyle())
}

func TestThemeFor_Accent(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.ThemeSettings
		primary  lipgloss.Color
	}{
		{
			name:     "custom accent replaces primary",
			settings: domain.ThemeSettings{Mode: domain.ThemeModeCustom, Preset: domain.ThemeOcean, Accent: "#123456"},
			primary:  "#123456",
		},
		{
			name:     "accent ignored in preset mode",
			settings: domain.ThemeSettings{Mode: domain.ThemeModePreset, Preset: domain.ThemeFire, Accent: "#123456"},
			primary:  presets[domain.ThemeFire].primary,
		},
		{
			name:     "empty custom accent keeps preset",
			settings: domain.ThemeSettings{Mode: domain.ThemeModeCustom, Preset: domain.ThemeFire},
			primary:  presets[domain.ThemeFire].primary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := ThemeFor(tt.settings)
			assert.Equal(t, tt.primary, theme.Primary)
			assert.Equal(t, presets[tt.settings.Preset].secondary, theme.Secondary)
		})
	}
}

func TestThemeFor_UnknownPresetUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultTheme(), ThemeFor(domain.ThemeSettings{Preset: "neon"}))
}

func TestNewStyles(t *testing.T) {
	theme := ThemeFor(domain.ThemeSettings{Preset: domain.ThemeNebula})
	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, theme.Primary, s.Title.GetForeground())
	assert.Equal(t, theme.Bar, s.StatusBar.GetBackground())
	assert.True(t, s.Match.GetBold())

	assert.NotNil(t, NewStyles(nil).Theme())
	assert.Equal(t, DefaultTheme(), DefaultStyles().Theme())
}
