package mcp

import (
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// Ports are the services exposed to clients. Only Search is required;
// the ask and analyze tools and the chat history resource appear when
// their service is set.
type Ports struct {
	Search   driving.SearchService
	Chat     driving.ChatService
	Analysis driving.AnalysisService
}

// Validate reports a missing search service.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
