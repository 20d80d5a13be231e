package driven

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// SpeechSynthesizer turns text into narrated audio.
// Failures are reported as an absent result, never as an error.
type SpeechSynthesizer interface {
	// Synthesize returns base64 encoded audio for text.
	// The boolean is false when no audio could be produced.
	Synthesize(ctx context.Context, text string, settings domain.AudioSettings) (string, bool)
}
