package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// defaultSearchLimit caps search results when the caller sets no limit.
const defaultSearchLimit = 20

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string   `json:"query" jsonschema:"text to find; matching is case-sensitive"`
	Types  []string `json:"types,omitempty" jsonschema:"restrict to collections: law, doc, action, analysis, comprehensive"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
	Offset int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	SourceLabel string `json:"source_label"`
	Content     string `json:"content"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"the question for the constitutional assistant"`
	NewSession bool   `json:"new_session,omitempty" jsonschema:"start a fresh conversation before asking"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions,omitempty"`
	SessionID   string   `json:"session_id"`
}

// AnalyzeInput is the input schema for the analyze tool.
type AnalyzeInput struct {
	Type string `json:"type" jsonschema:"record collection: law, doc, action, analysis, comprehensive"`
	ID   string `json:"id" jsonschema:"record identifier within its collection"`
}

// AnalyzeOutput is the output schema for the analyze tool.
type AnalyzeOutput struct {
	Title    string                 `json:"title"`
	Analysis domain.ArticleAnalysis `json:"analysis"`
}

// registerTools registers search and, when their services are present,
// the ask and analyze tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the 1906 constitution, historical documents, actions and their analyses",
	}, s.handleSearch)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the constitutional assistant a question; the turn is saved to chat history",
		}, s.handleAsk)
	}

	if s.ports.Analysis != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "analyze",
			Description: "Explain a record in modern language with historical context and opposing views",
		}, s.handleAnalyze)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	types := make([]domain.ResultType, 0, len(input.Types))
	for _, t := range input.Types {
		rt := domain.ResultType(t)
		if !rt.IsValid() {
			return nil, SearchOutput{}, fmt.Errorf("%w: result type %q", domain.ErrUnsupportedType, t)
		}
		types = append(types, rt)
	}

	opts := domain.SearchOptions{Types: types, Limit: limit, Offset: input.Offset}
	results := s.ports.Search.Search(input.Query, opts)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			ID:          results[i].ID,
			Type:        results[i].Type.String(),
			Title:       results[i].Title,
			SourceLabel: results[i].SourceLabel,
			Content:     results[i].Content,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Chat == nil {
		return nil, AskOutput{}, fmt.Errorf("%w: chat service not configured", ErrToolUnavailable)
	}

	if input.NewSession {
		s.ports.Chat.NewSession()
	}

	msg, err := s.ports.Chat.Send(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:      msg.Text,
		Suggestions: msg.Suggestions,
		SessionID:   s.ports.Chat.SessionID(),
	}, nil
}

// handleAnalyze handles the analyze tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	if s.ports.Analysis == nil {
		return nil, AnalyzeOutput{}, fmt.Errorf("%w: analysis service not configured", ErrToolUnavailable)
	}

	record, err := s.ports.Search.Lookup(domain.ResultType(input.Type), input.ID)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	analysis, err := s.ports.Analysis.Analyze(ctx, record.Title, record.Body)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	return nil, AnalyzeOutput{Title: record.Title, Analysis: analysis}, nil
}
