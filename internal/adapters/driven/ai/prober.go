package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

var _ driven.LLMProber = (*Prober)(nil)

// DefaultProbeTimeout bounds a probe when the caller sets no deadline.
const DefaultProbeTimeout = 5 * time.Second

// Prober checks LLM settings by building an unguarded client and pinging it.
type Prober struct {
	timeout time.Duration
}

// NewProber returns a prober. A zero timeout selects DefaultProbeTimeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{timeout: timeout}
}

// Probe pings the provider named by llm. Unconfigured settings pass.
func (p *Prober) Probe(ctx context.Context, llm domain.LLMSettings) error {
	if !llm.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(&llm)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s did not answer: %w", domain.ErrLLMUnavailable, llm.Provider, err)
	}
	return nil
}
