// Package tui is the interactive terminal interface: a menu over search,
// the assistant, saved chats, record pages and settings.
package tui

import (
	"errors"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// Port validation errors.
var (
	ErrInvalidPorts         = errors.New("tui: no ports given")
	ErrMissingSearchService = errors.New("tui: search service is required")
	ErrMissingChatService   = errors.New("tui: chat service is required")
)

// Ports holds the services the TUI drives.
type Ports struct {
	// Search provides live search and record lookup.
	Search driving.SearchService

	// Chat manages the assistant session and saved chats.
	Chat driving.ChatService

	// Analysis explains records. Optional.
	Analysis driving.AnalysisService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts returns ports with only the required services set.
func NewPorts(search driving.SearchService, chat driving.ChatService) *Ports {
	return &Ports{
		Search: search,
		Chat:   chat,
	}
}

// Validate reports the first missing required service.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
