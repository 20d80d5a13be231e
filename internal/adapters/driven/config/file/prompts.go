package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// verbs is the number of %s placeholders each template must keep.
var verbs = map[string]int{
	driven.PromptChatSystem:  3,
	driven.PromptSuggestions: 1,
	driven.PromptAnalysis:    2,
}

const promptReadme = `# Mashruteh Prompts

Templates sent to the language model. Each file keeps its %s
placeholders, filled in this order:

- chat_system.txt: knowledge context, conversation so far, question
- suggestions.txt: the answer being followed up
- analysis.txt: article title, article text

A file that is empty or has the wrong number of placeholders is ignored
and the built-in template is used instead. Edits apply on the next load.
`

type cachedPrompt struct {
	text    string
	modTime time.Time
}

// PromptStore serves prompt templates from .txt files in a directory.
// The directory is seeded with the defaults on first use. Files are
// re-read when their modification time changes.
type PromptStore struct {
	dir string

	seed    sync.Once
	seedErr error

	mu    sync.Mutex
	cache map[string]cachedPrompt
}

// NewPromptStore returns a store rooted at dir, or ~/.mashruteh/prompts
// when dir is empty. Nothing is touched on disk until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".mashruteh", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]cachedPrompt)}, nil
}

// Dir returns the directory holding the templates.
func (s *PromptStore) Dir() string { return s.dir }

// Load returns the template called name. Unreadable or invalid files
// fall back to the built-in default; only unknown names are errors.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, known := driven.DefaultPrompts[name]
	if !known {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	s.seed.Do(func() { s.seedErr = s.seedDefaults() })
	if s.seedErr != nil {
		return fallback, nil
	}

	text, err := s.read(name)
	if err != nil {
		logger.Debug("prompts: using built-in %s: %v", name, err)
		return fallback, nil
	}
	return text, nil
}

// Reload drops every cached template.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

func (s *PromptStore) read(name string) (string, error) {
	path := s.path(name)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[name]; ok && c.modTime.Equal(info.ModTime()) {
		return c.text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if err := checkTemplate(name, text); err != nil {
		logger.Warn("prompts: %s: %v", path, err)
		return "", err
	}

	s.cache[name] = cachedPrompt{text: text, modTime: info.ModTime()}
	return text, nil
}

func checkTemplate(name, text string) error {
	if text == "" {
		return errors.New("empty template")
	}
	if got, want := strings.Count(text, "%s"), verbs[name]; got != want {
		return fmt.Errorf("has %d placeholders, want %d", got, want)
	}
	return nil
}

// seedDefaults creates the directory and writes any missing file.
// Existing files are left alone.
func (s *PromptStore) seedDefaults() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}

	files := map[string]string{"README.md": promptReadme}
	for name, text := range driven.DefaultPrompts {
		files[name+".txt"] = text + "\n"
	}

	for file, content := range files {
		path := filepath.Join(s.dir, file)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
