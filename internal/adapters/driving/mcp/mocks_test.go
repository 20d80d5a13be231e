package mcp

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	record   domain.Record
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ string, opts domain.SearchOptions) []domain.SearchResult {
	m.lastOpts = opts
	return m.results
}

func (m *mockSearchService) Highlight(text, _ string) []domain.HighlightSegment {
	return []domain.HighlightSegment{{Text: text}}
}

func (m *mockSearchService) Lookup(_ domain.ResultType, _ string) (domain.Record, error) {
	return m.record, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply       domain.ChatMessage
	err         error
	chats       []domain.SavedChat
	sessionID   string
	newSessions int
	sent        []string
}

func (m *mockChatService) NewSession() string {
	m.newSessions++
	return m.sessionID
}

func (m *mockChatService) Send(_ context.Context, text string) (domain.ChatMessage, error) {
	m.sent = append(m.sent, text)
	return m.reply, m.err
}

func (m *mockChatService) Transcript() []domain.ChatMessage             { return nil }
func (m *mockChatService) SessionID() string                            { return m.sessionID }
func (m *mockChatService) Busy() bool                                   { return false }
func (m *mockChatService) History(_ context.Context) []domain.SavedChat { return m.chats }
func (m *mockChatService) Load(_ context.Context, _ string) error       { return m.err }
func (m *mockChatService) Delete(_ context.Context, _ string)           {}
func (m *mockChatService) Snapshot() (title, text string)               { return "", "" }

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analysis    domain.ArticleAnalysis
	err         error
	lastTitle   string
	lastContent string
}

func (m *mockAnalysisService) Analyze(_ context.Context, title, content string) (domain.ArticleAnalysis, error) {
	m.lastTitle = title
	m.lastContent = content
	return m.analysis, m.err
}

func (m *mockAnalysisService) Cached(_ context.Context, _ string) (domain.ArticleAnalysis, bool) {
	return m.analysis, m.err == nil
}
