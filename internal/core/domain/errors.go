package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown result type or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTurnInProgress indicates a chat turn is already awaiting a reply.
	// Sends arriving while busy are dropped, not queued.
	ErrTurnInProgress = errors.New("chat turn in progress")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Chat answers and article analysis are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrSpeechUnavailable indicates no speech synthesiser is configured.
	ErrSpeechUnavailable = errors.New("speech synthesis unavailable")

	// ErrRateLimited indicates the AI provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCircuitOpen indicates repeated AI failures tripped the circuit breaker.
	ErrCircuitOpen = errors.New("AI provider temporarily disabled")
)
