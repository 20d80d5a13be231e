package driven

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// ContentSource loads the content snapshot.
type ContentSource interface {
	// Load reads and validates every collection.
	Load(ctx context.Context) (*domain.ContentStore, error)
}
