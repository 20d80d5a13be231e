package driving

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// SettingsService manages application settings.
// It is the single writer of persisted settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its config key, e.g. "audio.speed".
	Set(key, value string) error

	// Keys lists the config keys accepted by Set.
	Keys() []string

	// Reset restores every setting to its default.
	Reset() error

	// SetPreset switches the theme preset and returns to preset mode.
	SetPreset(preset domain.ThemePreset) error

	// SetAccent sets a custom accent colour and switches to custom mode.
	SetAccent(hex string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks if current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ProbeLLM pings the configured provider. It returns nil when no
	// provider is configured.
	ProbeLLM(ctx context.Context) error
}
