package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

// fakeAPI answers generateContent calls with reply and records the last body.
func fakeAPI(t *testing.T, reply string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var last map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		last = nil
		assert.NoError(t, json.Unmarshal(body, &last))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.Error(t, err)

	_, err = NewSynthesizer(context.Background(), Config{})
	assert.Error(t, err)
}

func TestLLMService_Generate(t *testing.T) {
	srv, last := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"a\":1}"}]}}]}`)

	svc, err := NewLLMService(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLLMModels()[domain.AIProviderGemini], svc.ModelName())

	out, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{JSON: true})

	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
	gen, ok := (*last)["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", gen["responseMimeType"])
}

func TestLLMService_EmptyResponse(t *testing.T) {
	srv, _ := fakeAPI(t, `{"candidates":[]}`)

	svc, err := NewLLMService(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: driven.ChatRoleUser, Content: "q"}}, driven.ChatOptions{})

	assert.Error(t, err)
}

func TestSynthesizer_ReturnsAudio(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	srv, last := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"audio/pcm","data":"`+audio+`"}}]}}]}`)

	synth, err := NewSynthesizer(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	got, ok := synth.Synthesize(context.Background(), "متن", domain.AudioSettings{Gender: domain.VoiceMale, Tone: domain.ToneSad})

	require.True(t, ok)
	assert.Equal(t, audio, got)
	body, err := json.Marshal(*last)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Puck")
	assert.Contains(t, string(body), "sad, melancholic")
}

func TestSynthesizer_FailureIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	synth, err := NewSynthesizer(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, ok := synth.Synthesize(context.Background(), "متن", domain.AudioSettings{})
	assert.False(t, ok)
}

func TestSpeechPrompt(t *testing.T) {
	tests := []struct {
		tone domain.VoiceTone
		want string
	}{
		{domain.ToneNormal, "سلام"},
		{domain.ToneHappy, "(Say this in a happy, cheerful tone): سلام"},
		{domain.ToneNews, "(Say this in a formal news anchor tone): سلام"},
		{domain.ToneSad, "(Say this in a sad, melancholic tone): سلام"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tone), func(t *testing.T) {
			assert.Equal(t, tt.want, SpeechPrompt("سلام", tt.tone))
		})
	}
}
