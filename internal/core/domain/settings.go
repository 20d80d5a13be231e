package domain

const unknownDescription = "Unknown"

// ThemeMode selects between a named preset and a custom accent colour.
type ThemeMode string

// Available theme modes.
const (
	ThemeModePreset ThemeMode = "preset"
	ThemeModeCustom ThemeMode = "custom"
)

// ThemePreset names a colour preset.
type ThemePreset string

// Available presets.
const (
	ThemeModern    ThemePreset = "modern"
	ThemeRoyal     ThemePreset = "royal"
	ThemeCyberpunk ThemePreset = "cyberpunk"
	ThemeNature    ThemePreset = "nature"
	ThemePaper     ThemePreset = "paper"
	ThemeSunset    ThemePreset = "sunset"
	ThemeOcean     ThemePreset = "ocean"
	ThemeNebula    ThemePreset = "nebula"
	ThemeFire      ThemePreset = "fire"
	ThemeMagic     ThemePreset = "magic"
	ThemeAutumn    ThemePreset = "autumn"
	ThemeAurora    ThemePreset = "aurora"
	ThemeMidnight  ThemePreset = "midnight"
)

// AllThemePresets returns every preset in display order.
func AllThemePresets() []ThemePreset {
	return []ThemePreset{
		ThemeModern, ThemeRoyal, ThemeCyberpunk, ThemeNature, ThemePaper,
		ThemeSunset, ThemeOcean, ThemeNebula, ThemeFire, ThemeMagic,
		ThemeAutumn, ThemeAurora, ThemeMidnight,
	}
}

// IsValid returns true if the preset is recognised.
func (p ThemePreset) IsValid() bool {
	for _, known := range AllThemePresets() {
		if p == known {
			return true
		}
	}
	return false
}

// VoiceGender selects the default narration voice.
type VoiceGender string

// Available voice genders.
const (
	VoiceFemale VoiceGender = "Female"
	VoiceMale   VoiceGender = "Male"
)

// VoiceTone colours narration.
type VoiceTone string

// Available tones.
const (
	ToneNormal VoiceTone = "Normal"
	ToneNews   VoiceTone = "News"
	ToneHappy  VoiceTone = "Happy"
	ToneSad    VoiceTone = "Sad"
)

// AIProvider identifies an AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API. It also provides speech.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// SupportsSpeech returns true if this provider can synthesise narration.
func (p AIProvider) SupportsSpeech() bool {
	return p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud, chat + speech)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-3-flash-preview",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// DefaultSpeechModel is the Gemini text-to-speech model.
const DefaultSpeechModel = "gemini-2.5-flash-preview-tts"

// StorageBackend selects the durable key-value medium.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageBadger StorageBackend = "badger"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageBadger
}

// ThemeSettings holds terminal colour configuration.
type ThemeSettings struct {
	Mode   ThemeMode   `validate:"oneof=preset custom"`
	Preset ThemePreset `validate:"required"`

	// Accent is a hex colour used when Mode is custom.
	Accent string `validate:"omitempty,hexcolor"`
}

// DisplaySettings holds presentation preferences.
type DisplaySettings struct {
	FontSize   string `validate:"oneof=small medium large xlarge"`
	FontFamily string `validate:"oneof=vazir naskh custom"`
	ShowSplash bool
}

// AudioSettings configures narration.
type AudioSettings struct {
	Gender VoiceGender `validate:"oneof=Male Female"`
	Tone   VoiceTone   `validate:"oneof=Normal News Happy Sad"`
	Speed  float64     `validate:"gte=0.5,lte=2"`

	// VoiceName overrides the gender default when set.
	VoiceName string
}

// Voice returns the prebuilt voice to use.
func (a AudioSettings) Voice() string {
	if a.VoiceName != "" {
		return a.VoiceName
	}
	if a.Gender == VoiceMale {
		return "Puck"
	}
	return "Kore"
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `validate:"omitempty,url"`

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// SpeechSettings configures narration of chat answers.
type SpeechSettings struct {
	// Narrate synthesises audio for every chat answer.
	Narrate bool

	// Model is the text-to-speech model.
	Model string
}

// ChatSettings tunes the session manager.
type ChatSettings struct {
	// HistoryWindow is how many prior messages are sent with each question.
	HistoryWindow int `validate:"gte=1,lte=100"`

	// Greeting seeds every new session.
	Greeting string `validate:"required"`

	// DateLayout formats the display date of saved chats.
	DateLayout string `validate:"required"`
}

// StorageSettings selects the durable medium.
type StorageSettings struct {
	Backend StorageBackend `validate:"oneof=sqlite badger"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Theme   ThemeSettings
	Display DisplaySettings
	Audio   AudioSettings
	LLM     LLMSettings
	Speech  SpeechSettings
	Chat    ChatSettings
	Storage StorageSettings
}

// DefaultHistoryWindow is the default number of prior messages sent per turn.
const DefaultHistoryWindow = 10

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; the user must set a provider and key.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Theme: ThemeSettings{
			Mode:   ThemeModePreset,
			Preset: ThemeModern,
		},
		Display: DisplaySettings{
			FontSize:   "medium",
			FontFamily: "vazir",
			ShowSplash: true,
		},
		Audio: AudioSettings{
			Gender: VoiceFemale,
			Tone:   ToneNormal,
			Speed:  1,
		},
		LLM: LLMSettings{},
		Speech: SpeechSettings{
			Model: DefaultSpeechModel,
		},
		Chat: ChatSettings{
			HistoryWindow: DefaultHistoryWindow,
			Greeting:      DefaultGreeting,
			DateLayout:    "2006-01-02",
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
	}
}
