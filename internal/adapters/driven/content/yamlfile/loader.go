// Package yamlfile loads the content snapshot from a YAML document.
// Without a path the bundled dataset is used.
package yamlfile

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

//go:embed data/constitution.yaml
var bundled []byte

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Source reads a content snapshot from a YAML file or the bundled dataset.
type Source struct {
	path     string
	validate *validator.Validate
}

// New creates a Source for path. An empty path selects the bundled dataset.
func New(path string) *Source {
	return &Source{
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Path returns the file being read, or "" for the bundled dataset.
func (s *Source) Path() string {
	return s.path
}

// Load parses and validates every collection.
func (s *Source) Load(ctx context.Context) (*domain.ContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := bundled
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("reading content: %w", err)
		}
	}

	store, err := s.decode(data)
	if err != nil {
		name := s.path
		if name == "" {
			name = "bundled dataset"
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("loaded %d records (%d sections, %d documents, %d actions, %d legal checks, %d comprehensive)",
		store.Size(), len(store.Sections), len(store.Documents), len(store.Actions),
		len(store.LegalChecks), len(store.Comprehensive))
	return store, nil
}

func (s *Source) decode(data []byte) (*domain.ContentStore, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var store domain.ContentStore
	if err := dec.Decode(&store); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.validate.Struct(&store); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, fe.Namespace(), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := store.CheckIDs(); err != nil {
		return nil, err
	}
	return &store, nil
}
