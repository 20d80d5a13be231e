package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

const (
	// chatScheme prefixes saved chat resources.
	chatScheme = "chat://"

	// recordScheme prefixes content record resources.
	recordScheme = "record://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing saved chats.
	s.server.AddResource(&mcp.Resource{
		URI:         chatScheme + "history",
		Name:        "chat-history",
		Description: "Saved conversations with the assistant, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for one saved chat transcript.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: chatScheme + "history/{chatId}",
		Name:        "chat-transcript",
		Description: "Transcript of a saved conversation",
		MIMEType:    "text/plain",
	}, s.handleTranscriptResource)

	// Template for content records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: recordScheme + "{type}/{id}",
		Name:        "record",
		Description: "Full text of a constitution section, document, action or analysis",
		MIMEType:    "text/markdown",
	}, s.handleRecordResource)
}

// handleHistoryResource returns a summary of all saved chats.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Chat == nil {
		return textResult(req.Params.URI, "application/json", "[]"), nil
	}

	type chatInfo struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Date     string `json:"date"`
		Messages int    `json:"messages"`
	}

	chats := s.ports.Chat.History(ctx)
	infos := make([]chatInfo, len(chats))
	for i, c := range chats {
		infos[i] = chatInfo{
			ID:       c.ID,
			Title:    c.Title,
			Date:     c.Date,
			Messages: len(c.Messages),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chat history: %w", err)
	}

	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleTranscriptResource renders one saved chat as plain text.
func (s *Server) handleTranscriptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Chat == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract chatId from URI: chat://history/{chatId}
	chatID := extractChatID(req.Params.URI)
	if chatID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, c := range s.ports.Chat.History(ctx) {
		if c.ID == chatID {
			text := domain.RenderTranscript(c.Title, c.Messages)
			return textResult(req.Params.URI, "text/plain", text), nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleRecordResource returns the Markdown body of a record.
func (s *Server) handleRecordResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract type and id from URI: record://{type}/{id}
	resultType, id := extractRecordRef(req.Params.URI)
	if resultType == "" || id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Search.Lookup(domain.ResultType(resultType), id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text := "# " + record.Title + "\n\n" + record.Body
	return textResult(req.Params.URI, "text/markdown", text), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractChatID extracts the chat ID from a URI like chat://history/{chatId}.
func extractChatID(uri string) string {
	const prefix = chatScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

// extractRecordRef splits a URI like record://{type}/{id}.
func extractRecordRef(uri string) (resultType, id string) {
	if !strings.HasPrefix(uri, recordScheme) {
		return "", ""
	}

	resultType, id, ok := strings.Cut(strings.TrimPrefix(uri, recordScheme), "/")
	if !ok {
		return "", ""
	}
	return resultType, id
}
