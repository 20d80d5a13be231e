package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/httpapi"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Ensure the guards implement the interfaces they wrap.
var (
	_ driven.LLMService        = (*GuardedLLM)(nil)
	_ driven.SpeechSynthesizer = (*GuardedSynthesizer)(nil)
)

// GuardConfig bounds how hard the application leans on a provider.
type GuardConfig struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64

	// Burst is the token bucket size.
	Burst int

	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32

	// Cooldown is how long the circuit stays open before a trial request.
	Cooldown time.Duration
}

// DefaultGuardConfig returns conservative limits for cloud providers.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		RequestsPerSecond: 2,
		Burst:             4,
		MaxFailures:       5,
		Cooldown:          30 * time.Second,
	}
}

// guard pairs a token bucket with a circuit breaker.
type guard struct {
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newGuard(name string, cfg GuardConfig) *guard {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultGuardConfig().MaxFailures
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &guard{
		limiter: rate.NewLimiter(limit, cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.MaxFailures
			},
			IsSuccessful: func(err error) bool {
				// Cancellation and rejected requests say nothing about provider health.
				return err == nil || errors.Is(err, context.Canceled) || httpapi.IsRequestError(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit %s: %s -> %s", name, from, to)
			},
		}),
	}
}

// do waits for a token and runs fn through the breaker.
func (g *guard) do(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	out, err := g.breaker.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", domain.ErrCircuitOpen, err)
	}
	if err != nil {
		return "", err
	}
	text, _ := out.(string)
	return text, nil
}

// State reports the breaker state, for diagnostics.
func (g *guard) state() gobreaker.State {
	return g.breaker.State()
}

// GuardedLLM rate limits an LLM service and stops calling it after
// repeated failures.
type GuardedLLM struct {
	inner driven.LLMService
	guard *guard
}

// NewGuardedLLM wraps inner.
func NewGuardedLLM(inner driven.LLMService, cfg GuardConfig) *GuardedLLM {
	return &GuardedLLM{inner: inner, guard: newGuard("llm:"+inner.ModelName(), cfg)}
}

// Generate produces text completion from a prompt.
func (g *GuardedLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return g.guard.do(ctx, func() (string, error) {
		return g.inner.Generate(ctx, prompt, opts)
	})
}

// Chat conducts a multi-turn conversation.
func (g *GuardedLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	return g.guard.do(ctx, func() (string, error) {
		return g.inner.Chat(ctx, messages, opts)
	})
}

// ModelName returns the wrapped model name.
func (g *GuardedLLM) ModelName() string {
	return g.inner.ModelName()
}

// Ping bypasses the guard.
func (g *GuardedLLM) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}

// Close closes the wrapped service.
func (g *GuardedLLM) Close() error {
	return g.inner.Close()
}

// GuardedSynthesizer applies the same limits to speech synthesis.
type GuardedSynthesizer struct {
	inner driven.SpeechSynthesizer
	guard *guard
}

// errNoAudio marks an absent synthesis result as a breaker failure.
var errNoAudio = errors.New("no audio produced")

// NewGuardedSynthesizer wraps inner.
func NewGuardedSynthesizer(inner driven.SpeechSynthesizer, cfg GuardConfig) *GuardedSynthesizer {
	return &GuardedSynthesizer{inner: inner, guard: newGuard("speech", cfg)}
}

// Synthesize returns base64 encoded audio, or false when unavailable.
func (g *GuardedSynthesizer) Synthesize(ctx context.Context, text string, settings domain.AudioSettings) (string, bool) {
	audio, err := g.guard.do(ctx, func() (string, error) {
		audio, ok := g.inner.Synthesize(ctx, text, settings)
		if !ok {
			return "", errNoAudio
		}
		return audio, nil
	})
	if err != nil {
		logger.Debug("speech skipped: %v", err)
		return "", false
	}
	return audio, true
}
