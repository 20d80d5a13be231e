package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, ThemeModePreset, s.Theme.Mode)
	assert.Equal(t, ThemeModern, s.Theme.Preset)
	assert.True(t, s.Display.ShowSplash)
	assert.Equal(t, VoiceFemale, s.Audio.Gender)
	assert.Equal(t, 1.0, s.Audio.Speed)
	assert.Equal(t, DefaultHistoryWindow, s.Chat.HistoryWindow)
	assert.Equal(t, DefaultGreeting, s.Chat.Greeting)
	assert.Equal(t, StorageSQLite, s.Storage.Backend)
	assert.False(t, s.LLM.IsConfigured())
}

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("cohere").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("cohere").Description())
}

func TestAIProvider_Capabilities(t *testing.T) {
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.True(t, AIProviderGemini.SupportsSpeech())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.SupportsSpeech())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{"empty", LLMSettings{}, false},
		{"gemini without key", LLMSettings{Provider: AIProviderGemini}, false},
		{"gemini with key", LLMSettings{Provider: AIProviderGemini, APIKey: "k"}, true},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestAudioSettings_Voice(t *testing.T) {
	assert.Equal(t, "Kore", AudioSettings{Gender: VoiceFemale}.Voice())
	assert.Equal(t, "Puck", AudioSettings{Gender: VoiceMale}.Voice())
	assert.Equal(t, "Charon", AudioSettings{Gender: VoiceMale, VoiceName: "Charon"}.Voice())
}

func TestThemePreset_IsValid(t *testing.T) {
	assert.Len(t, AllThemePresets(), 13)
	assert.True(t, ThemeMidnight.IsValid())
	assert.False(t, ThemePreset("neon").IsValid())
}

func TestStorageBackend_IsValid(t *testing.T) {
	assert.True(t, StorageSQLite.IsValid())
	assert.True(t, StorageBadger.IsValid())
	assert.False(t, StorageBackend("redis").IsValid())
}
