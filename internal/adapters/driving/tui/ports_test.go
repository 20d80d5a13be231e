package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/services"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(query string, opts domain.SearchOptions) []domain.SearchResult
	LookupFunc func(resultType domain.ResultType, id string) (domain.Record, error)
}

func (m *MockSearchService) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	if m.SearchFunc != nil {
		return m.SearchFunc(query, opts)
	}
	return nil
}

func (m *MockSearchService) Highlight(text, query string) []domain.HighlightSegment {
	return services.Highlight(text, query)
}

func (m *MockSearchService) Lookup(resultType domain.ResultType, id string) (domain.Record, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(resultType, id)
	}
	return domain.Record{}, domain.ErrNotFound
}

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	transcript []domain.ChatMessage
	chats      []domain.SavedChat
	loadErr    error
}

func (m *MockChatService) NewSession() string {
	m.transcript = nil
	return "1"
}

func (m *MockChatService) Send(_ context.Context, text string) (domain.ChatMessage, error) {
	reply := domain.ChatMessage{ID: "m", Role: domain.RoleModel, Text: "پاسخ: " + text}
	m.transcript = append(m.transcript, domain.ChatMessage{ID: "u", Role: domain.RoleUser, Text: text}, reply)
	return reply, nil
}

func (m *MockChatService) Transcript() []domain.ChatMessage           { return m.transcript }
func (m *MockChatService) SessionID() string                          { return "1" }
func (m *MockChatService) Busy() bool                                 { return false }
func (m *MockChatService) History(context.Context) []domain.SavedChat { return m.chats }
func (m *MockChatService) Load(context.Context, string) error         { return m.loadErr }
func (m *MockChatService) Delete(context.Context, string)             {}

func (m *MockChatService) Snapshot() (string, string) {
	return "chat", domain.RenderTranscript("chat", m.transcript)
}

// MockAnalysisService implements driving.AnalysisService for testing.
type MockAnalysisService struct{}

func (m *MockAnalysisService) Analyze(context.Context, string, string) (domain.ArticleAnalysis, error) {
	return domain.ArticleAnalysis{ModernText: "متن امروزی"}, nil
}

func (m *MockAnalysisService) Cached(context.Context, string) (domain.ArticleAnalysis, bool) {
	return domain.ArticleAnalysis{}, false
}

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	chat := &MockChatService{}

	ports := NewPorts(search, chat)

	require.NotNil(t, ports)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, chat, ports.Chat)
	assert.Nil(t, ports.Analysis)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{Chat: &MockChatService{}}, ErrMissingSearchService},
		{"missing chat", &Ports{Search: &MockSearchService{}}, ErrMissingChatService},
		{"required only", NewPorts(&MockSearchService{}, &MockChatService{}), nil},
		{
			"all ports",
			&Ports{
				Search:   &MockSearchService{},
				Chat:     &MockChatService{},
				Analysis: &MockAnalysisService{},
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
