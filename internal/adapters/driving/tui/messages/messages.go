// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// SearchCompleted carries the results for one query. An empty Filter
// means every collection was searched.
type SearchCompleted struct {
	Query   string
	Filter  domain.ResultType
	Results []domain.SearchResult
}

// ResultSelected is sent when a search result is opened.
type ResultSelected struct {
	Result domain.SearchResult
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the live search view.
	ViewSearch
	// ViewRecord shows one record and its analysis.
	ViewRecord
	// ViewChat is the assistant chat.
	ViewChat
	// ViewHistory lists saved chats.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewRecord:
		return "record"
	case ViewChat:
		return "chat"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// RecordLoaded carries a looked up record.
type RecordLoaded struct {
	Record domain.Record
	Err    error
}

// AnalysisLoaded carries the analysis of a record.
type AnalysisLoaded struct {
	Title    string
	Analysis domain.ArticleAnalysis
	Err      error
}

// ChatReplied carries the model message that settled a turn.
type ChatReplied struct {
	Message domain.ChatMessage
	Err     error
}

// HistoryLoaded carries the saved chats, newest first.
type HistoryLoaded struct {
	Chats []domain.SavedChat
}

// ChatOpened signals a saved chat became the active session.
type ChatOpened struct {
	ID  string
	Err error
}

// ChatDeleted signals a saved chat was removed.
type ChatDeleted struct {
	ID string
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
