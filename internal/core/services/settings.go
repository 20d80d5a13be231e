package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyThemeMode      = "theme.mode"
	keyThemePreset    = "theme.preset"
	keyThemeAccent    = "theme.accent"
	keyFontSize       = "display.font_size"
	keyFontFamily     = "display.font_family"
	keyShowSplash     = "display.show_splash"
	keyAudioGender    = "audio.gender"
	keyAudioTone      = "audio.tone"
	keyAudioSpeed     = "audio.speed"
	keyAudioVoice     = "audio.voice_name"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keySpeechNarrate  = "speech.narrate"
	keySpeechModel    = "speech.model"
	keyHistoryWindow  = "chat.history_window"
	keyChatGreeting   = "chat.greeting"
	keyChatDateLayout = "chat.date_layout"
	keyStorageBackend = "storage.backend"
)

// settingKeys maps every settable key to its setter.
var settingKeys = map[string]func(s *domain.AppSettings, v string) error{
	keyThemeMode: func(s *domain.AppSettings, v string) error {
		s.Theme.Mode = domain.ThemeMode(v)
		return nil
	},
	keyThemePreset: func(s *domain.AppSettings, v string) error {
		p := domain.ThemePreset(v)
		if !p.IsValid() {
			return fmt.Errorf("unknown preset %q", v)
		}
		s.Theme.Preset = p
		s.Theme.Mode = domain.ThemeModePreset
		return nil
	},
	keyThemeAccent: func(s *domain.AppSettings, v string) error {
		s.Theme.Accent = v
		s.Theme.Mode = domain.ThemeModeCustom
		return nil
	},
	keyFontSize:   func(s *domain.AppSettings, v string) error { s.Display.FontSize = v; return nil },
	keyFontFamily: func(s *domain.AppSettings, v string) error { s.Display.FontFamily = v; return nil },
	keyShowSplash: func(s *domain.AppSettings, v string) error {
		b, err := strconv.ParseBool(v)
		s.Display.ShowSplash = b
		return err
	},
	keyAudioGender: func(s *domain.AppSettings, v string) error { s.Audio.Gender = domain.VoiceGender(v); return nil },
	keyAudioTone:   func(s *domain.AppSettings, v string) error { s.Audio.Tone = domain.VoiceTone(v); return nil },
	keyAudioSpeed: func(s *domain.AppSettings, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		s.Audio.Speed = f
		return err
	},
	keyAudioVoice: func(s *domain.AppSettings, v string) error { s.Audio.VoiceName = v; return nil },
	keyLLMProvider: func(s *domain.AppSettings, v string) error {
		p := domain.AIProvider(v)
		if !p.IsValid() {
			return fmt.Errorf("unknown provider %q", v)
		}
		s.LLM.Provider = p
		return nil
	},
	keyLLMModel:   func(s *domain.AppSettings, v string) error { s.LLM.Model = v; return nil },
	keyLLMBaseURL: func(s *domain.AppSettings, v string) error { s.LLM.BaseURL = v; return nil },
	keyLLMAPIKey:  func(s *domain.AppSettings, v string) error { s.LLM.APIKey = v; return nil },
	keySpeechNarrate: func(s *domain.AppSettings, v string) error {
		b, err := strconv.ParseBool(v)
		s.Speech.Narrate = b
		return err
	},
	keySpeechModel: func(s *domain.AppSettings, v string) error { s.Speech.Model = v; return nil },
	keyHistoryWindow: func(s *domain.AppSettings, v string) error {
		n, err := strconv.Atoi(v)
		s.Chat.HistoryWindow = n
		return err
	},
	keyChatGreeting:   func(s *domain.AppSettings, v string) error { s.Chat.Greeting = v; return nil },
	keyChatDateLayout: func(s *domain.AppSettings, v string) error { s.Chat.DateLayout = v; return nil },
	keyStorageBackend: func(s *domain.AppSettings, v string) error {
		s.Storage.Backend = domain.StorageBackend(v)
		return nil
	},
}

// SettingsService manages application settings.
// It is the only component that writes settings to the config store.
type SettingsService struct {
	configStore driven.ConfigStore
	prober      driven.LLMProber
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, prober driven.LLMProber) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		prober:      prober,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get retrieves current application settings.
// Missing or unrecognised values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Theme: domain.ThemeSettings{
			Mode:   domain.ThemeMode(s.getEnum(keyThemeMode, string(d.Theme.Mode), "preset", "custom")),
			Preset: s.getPreset(d.Theme.Preset),
			Accent: s.rawString(keyThemeAccent),
		},
		Display: domain.DisplaySettings{
			FontSize:   s.getEnum(keyFontSize, d.Display.FontSize, "small", "medium", "large", "xlarge"),
			FontFamily: s.getEnum(keyFontFamily, d.Display.FontFamily, "vazir", "naskh", "custom"),
			ShowSplash: s.getBool(keyShowSplash, d.Display.ShowSplash),
		},
		Audio: domain.AudioSettings{
			Gender:    domain.VoiceGender(s.getEnum(keyAudioGender, string(d.Audio.Gender), "Male", "Female")),
			Tone:      domain.VoiceTone(s.getEnum(keyAudioTone, string(d.Audio.Tone), "Normal", "News", "Happy", "Sad")),
			Speed:     s.getFloat(keyAudioSpeed, d.Audio.Speed),
			VoiceName: s.getString(keyAudioVoice, d.Audio.VoiceName),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(d.LLM.Provider),
			Model:    s.getString(keyLLMModel, d.LLM.Model),
			BaseURL:  s.rawString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.rawString(keyLLMAPIKey),
		},
		Speech: domain.SpeechSettings{
			Narrate: s.getBool(keySpeechNarrate, d.Speech.Narrate),
			Model:   s.getString(keySpeechModel, d.Speech.Model),
		},
		Chat: domain.ChatSettings{
			HistoryWindow: s.getInt(keyHistoryWindow, d.Chat.HistoryWindow),
			Greeting:      s.getString(keyChatGreeting, d.Chat.Greeting),
			DateLayout:    s.getString(keyChatDateLayout, d.Chat.DateLayout),
		},
		Storage: domain.StorageSettings{
			Backend: domain.StorageBackend(s.getEnum(keyStorageBackend, string(d.Storage.Backend), "sqlite", "badger")),
		},
	}

	if settings.LLM.Model == "" && settings.LLM.Provider.IsValid() {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.check(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyThemeMode, string(settings.Theme.Mode)},
		{keyThemePreset, string(settings.Theme.Preset)},
		{keyThemeAccent, settings.Theme.Accent},
		{keyFontSize, settings.Display.FontSize},
		{keyFontFamily, settings.Display.FontFamily},
		{keyShowSplash, settings.Display.ShowSplash},
		{keyAudioGender, string(settings.Audio.Gender)},
		{keyAudioTone, string(settings.Audio.Tone)},
		{keyAudioSpeed, settings.Audio.Speed},
		{keyAudioVoice, settings.Audio.VoiceName},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keySpeechNarrate, settings.Speech.Narrate},
		{keySpeechModel, settings.Speech.Model},
		{keyHistoryWindow, settings.Chat.HistoryWindow},
		{keyChatGreeting, settings.Chat.Greeting},
		{keyChatDateLayout, settings.Chat.DateLayout},
		{keyStorageBackend, string(settings.Storage.Backend)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty key never overwrites a stored one.
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// Set updates one setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	apply, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := apply(settings, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return s.Save(settings)
}

// Keys lists the config keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset restores every setting to its default.
func (s *SettingsService) Reset() error {
	for _, key := range s.Keys() {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// SetPreset switches the theme preset and returns to preset mode.
func (s *SettingsService) SetPreset(preset domain.ThemePreset) error {
	return s.Set(keyThemePreset, string(preset))
}

// SetAccent sets a custom accent colour and switches to custom mode.
func (s *SettingsService) SetAccent(hex string) error {
	return s.Set(keyThemeAccent, hex)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	// Keep a stored key when switching models on the same provider.
	if apiKey == "" && settings.LLM.Provider == provider {
		apiKey = settings.LLM.APIKey
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.check(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ProbeLLM pings the configured provider through the prober, if any.
func (s *SettingsService) ProbeLLM(ctx context.Context) error {
	if s.prober == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.prober.Probe(ctx, settings.LLM)
}

// check runs struct validation and cross-field rules.
func (s *SettingsService) check(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !settings.Theme.Preset.IsValid() {
		return fmt.Errorf("%w: unknown preset %q", domain.ErrInvalidInput, settings.Theme.Preset)
	}
	if settings.Theme.Mode == domain.ThemeModeCustom && settings.Theme.Accent == "" {
		return fmt.Errorf("%w: custom theme needs an accent colour", domain.ErrInvalidInput)
	}
	if settings.LLM.Provider != "" && !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.LLM.Provider)
	}
	return nil
}

// formatFieldError renders one validation failure as "Section.Field rule".
func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "AppSettings.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// Readers with defaults. A stored zero value or a value of the wrong type
// counts as unset, except for booleans where presence decides.

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.rawString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v := toInt(s.raw(key)); v != 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v := toFloat(s.raw(key)); v != 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	v, ok := s.raw(key).(bool)
	if !ok {
		return defaultVal
	}
	return v
}

func (s *SettingsService) getEnum(key, defaultVal string, allowed ...string) string {
	val := s.rawString(key)
	for _, a := range allowed {
		if val == a {
			return val
		}
	}
	return defaultVal
}

func (s *SettingsService) getPreset(defaultVal domain.ThemePreset) domain.ThemePreset {
	p := domain.ThemePreset(s.rawString(keyThemePreset))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.rawString(keyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
