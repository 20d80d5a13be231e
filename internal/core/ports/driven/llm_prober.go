package driven

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// LLMProber checks that LLM settings reach a working provider.
type LLMProber interface {
	// Probe builds a client for llm and makes one cheap request. Settings
	// without a provider are not an error.
	Probe(ctx context.Context, llm domain.LLMSettings) error
}
