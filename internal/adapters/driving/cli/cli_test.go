package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/kvcache"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/services"
)

const (
	stubAnswer     = "مجلس نماینده ملت است."
	stubSuggestion = "اصل دوم چیست؟"
	stubAnalysis   = `{"modernText":"متن امروزی","example":"مثال","historicalContext":"زمینه",` +
		`"proponentView":"موافق","opponentView":"مخالف","prevailingView":"غالب","legalTruth":"حقیقت"}`
)

// stubLLM answers chat questions with a fixed reply and serves JSON for
// analysis and follow-up prompts.
type stubLLM struct{}

func (stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if strings.Contains(prompt, "modernText") {
		return stubAnalysis, nil
	}
	return `["` + stubSuggestion + `"]`, nil
}

func (stubLLM) Chat(context.Context, []driven.ChatMessage, driven.ChatOptions) (string, error) {
	return stubAnswer, nil
}

func (stubLLM) ModelName() string          { return "stub" }
func (stubLLM) Ping(context.Context) error { return nil }
func (stubLLM) Close() error               { return nil }

// stubSynth returns the same audio for every request.
type stubSynth struct{}

func (stubSynth) Synthesize(context.Context, string, domain.AudioSettings) (string, bool) {
	return base64.StdEncoding.EncodeToString([]byte("audio")), true
}

func testContent() *domain.ContentStore {
	return &domain.ContentStore{
		Sections: []domain.Section{
			{ID: "const_1", Title: "اصل اول", Content: "مجلس شورای ملی تشکیل می‌شود", Category: domain.LawCategoryConstitution},
			{ID: "const_2", Title: "اصل دوم", Content: "مجلس نماینده قاطبه ملت است", Category: domain.LawCategoryConstitution},
		},
		Documents: []domain.HistoricalDoc{
			{ID: "doc_1", Title: "فرمان مشروطیت", Content: "تشکیل مجلس شورای ملی"},
		},
	}
}

// setupTestServices injects real services backed by memory stores. llm and
// synth may be nil.
func setupTestServices(t *testing.T, llm driven.LLMService, synth driven.SpeechSynthesizer) {
	t.Helper()

	content := testContent()
	cache := kvcache.New(memory.NewKVStore())
	chat := services.NewChatService(services.NewAssistantService(llm, content), cache, services.ChatConfig{})

	SetServices(&Services{
		Search:   services.NewSearchService(content),
		Chat:     chat,
		Analysis: services.NewAnalysisService(llm, cache),
		Speech:   services.NewSpeechService(synth, domain.DefaultAppSettings().Audio),
		Settings: services.NewSettingsService(memory.NewConfigStore(), nil),
	})

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	searchTypes, searchLimit, searchOffset, searchJSON = "", 10, 0, false
	showRaw = false
	chatJSON = false
	historyJSON = false
	analyzeTitle, analyzeContent, analyzeCachedOnly, analyzeJSON = "", "", false, false
	speakOutput = "speech.pcm"
	mcpPort, mcpHost = 0, "localhost"
	versionShort = false

	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}
