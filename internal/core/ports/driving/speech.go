package driving

import "context"

// SpeechService narrates text with the current audio settings.
type SpeechService interface {
	// Speak returns decoded audio bytes.
	// Returns domain.ErrSpeechUnavailable when no synthesiser is configured
	// or synthesis produced nothing.
	Speak(ctx context.Context, text string) ([]byte, error)
}
