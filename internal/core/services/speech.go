package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// Ensure SpeechService implements the interface.
var _ driving.SpeechService = (*SpeechService)(nil)

// SpeechService narrates text with the configured voice.
type SpeechService struct {
	synth driven.SpeechSynthesizer

	mu    sync.RWMutex
	audio domain.AudioSettings
}

// NewSpeechService creates a speech service. synth may be nil.
func NewSpeechService(synth driven.SpeechSynthesizer, audio domain.AudioSettings) *SpeechService {
	return &SpeechService{synth: synth, audio: audio}
}

// SetAudio replaces the voice settings.
func (s *SpeechService) SetAudio(audio domain.AudioSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = audio
}

// Speak returns decoded audio for text.
func (s *SpeechService) Speak(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}
	if s.synth == nil {
		return nil, domain.ErrSpeechUnavailable
	}

	s.mu.RLock()
	audio := s.audio
	s.mu.RUnlock()

	encoded, ok := s.synth.Synthesize(ctx, text, audio)
	if !ok {
		return nil, domain.ErrSpeechUnavailable
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return data, nil
}
