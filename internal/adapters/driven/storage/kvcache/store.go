package kvcache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Reserved keys in the key-value medium.
const (
	AnalysisKey    = "constitution_analysis_cache"
	ChatHistoryKey = "constitution_chat_history"
)

// Ensure Store implements both cache namespaces.
var (
	_ driven.AnalysisCache    = (*Store)(nil)
	_ driven.ChatHistoryStore = (*Store)(nil)
)

// Store serialises the analysis cache and chat history into a key-value medium.
// Read-modify-write cycles are serialised per process.
type Store struct {
	kv driven.KeyValueStore
	mu sync.Mutex
}

// New creates a cache store over kv.
func New(kv driven.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Get looks up an analysis by exact title.
func (s *Store) Get(ctx context.Context, title string) (domain.ArticleAnalysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis, ok := s.readAnalyses(ctx)[title]
	return analysis, ok
}

// Put inserts or overwrites the analysis for title.
func (s *Store) Put(ctx context.Context, title string, analysis domain.ArticleAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAnalyses(ctx)
	all[title] = analysis
	s.write(ctx, AnalysisKey, all)
}

// ListAll returns every saved chat in stored order, newest first.
func (s *Store) ListAll(ctx context.Context) []domain.SavedChat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readChats(ctx)
}

// Save replaces the chat with the same id in place, or prepends it.
func (s *Store) Save(ctx context.Context, chat domain.SavedChat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := s.readChats(ctx)
	replaced := false
	for i := range chats {
		if chats[i].ID == chat.ID {
			chats[i] = chat
			replaced = true
			break
		}
	}
	if !replaced {
		chats = append([]domain.SavedChat{chat}, chats...)
	}
	s.write(ctx, ChatHistoryKey, chats)
}

// Delete removes the chat with id.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := s.readChats(ctx)
	kept := chats[:0]
	for _, c := range chats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(chats) {
		return
	}
	s.write(ctx, ChatHistoryKey, kept)
}

func (s *Store) readAnalyses(ctx context.Context) map[string]domain.ArticleAnalysis {
	all := make(map[string]domain.ArticleAnalysis)
	if !s.read(ctx, AnalysisKey, &all) || all == nil {
		return make(map[string]domain.ArticleAnalysis)
	}
	return all
}

func (s *Store) readChats(ctx context.Context) []domain.SavedChat {
	var chats []domain.SavedChat
	if !s.read(ctx, ChatHistoryKey, &chats) || chats == nil {
		return []domain.SavedChat{}
	}
	return chats
}

// read decodes key into dst. It reports false when the key is absent,
// unreadable or corrupt.
func (s *Store) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("cache %s is corrupt, treating as empty: %v", key, err)
		return false
	}
	return true
}

func (s *Store) write(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache encode %s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		logger.Warn("cache write %s: %v", key, err)
	}
}
