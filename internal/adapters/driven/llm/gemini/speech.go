package gemini

import (
	"context"
	"encoding/base64"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Ensure Synthesizer implements the interface.
var _ driven.SpeechSynthesizer = (*Synthesizer)(nil)

// tonePrefixes are prepended to the text so the voice model adopts a tone.
var tonePrefixes = map[domain.VoiceTone]string{
	domain.ToneSad:   "(Say this in a sad, melancholic tone): ",
	domain.ToneHappy: "(Say this in a happy, cheerful tone): ",
	domain.ToneNews:  "(Say this in a formal news anchor tone): ",
}

// Synthesizer narrates text with a Gemini prebuilt voice.
type Synthesizer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewSynthesizer creates a Gemini speech synthesizer.
func NewSynthesizer(ctx context.Context, cfg Config) (*Synthesizer, error) {
	cfg = cfg.withDefaults()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{client: client, model: cfg.SpeechModel, timeout: cfg.Timeout}, nil
}

// SpeechPrompt returns the text sent to the voice model for tone.
func SpeechPrompt(text string, tone domain.VoiceTone) string {
	return tonePrefixes[tone] + text
}

// Synthesize returns base64 encoded audio. Any failure yields false.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, settings domain.AudioSettings) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: settings.Voice()},
			},
		},
	}
	contents := []*genai.Content{genai.NewContentFromText(SpeechPrompt(text, settings.Tone), genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		logger.Warn("speech synthesis failed: %v", err)
		return "", false
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return base64.StdEncoding.EncodeToString(part.InlineData.Data), true
		}
	}
	return "", false
}
