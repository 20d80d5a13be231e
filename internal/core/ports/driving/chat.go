package driving

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// ChatService manages the active chat session and its saved history.
type ChatService interface {
	// NewSession discards the active transcript and seeds a fresh session.
	// It returns the new session id.
	NewSession() string

	// Send runs one turn and returns the model message that settled it.
	// Returns domain.ErrTurnInProgress while another turn is in flight.
	Send(ctx context.Context, text string) (domain.ChatMessage, error)

	// Transcript returns a copy of the active transcript.
	Transcript() []domain.ChatMessage

	// SessionID returns the active session id.
	SessionID() string

	// Busy reports whether a turn is awaiting its reply.
	Busy() bool

	// History lists saved chats, newest first.
	History(ctx context.Context) []domain.SavedChat

	// Load makes a saved chat the active session.
	Load(ctx context.Context, id string) error

	// Delete removes a saved chat. Deleting the active session starts a new one.
	Delete(ctx context.Context, id string)

	// Snapshot renders the active session for export.
	Snapshot() (title, text string)
}
