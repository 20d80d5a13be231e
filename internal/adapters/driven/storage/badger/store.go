// Package badger provides an embedded BadgerDB key-value medium, selectable
// with storage.backend = "badger" as an alternative to SQLite.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// dirName is the database directory inside the data directory.
const dirName = "badger"

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Options configures a Store.
type Options struct {
	// DataDir holds the database directory. Ignored when InMemory is set.
	DataDir string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool
}

// Store is a BadgerDB-backed key-value medium.
type Store struct {
	db   *badger.DB
	path string
}

// zapAdapter routes badger's internal logging through the application logger.
type zapAdapter struct {
	log *zap.SugaredLogger
}

func (l zapAdapter) Errorf(format string, args ...any)   { l.log.Errorf(format, args...) }
func (l zapAdapter) Warningf(format string, args ...any) { l.log.Warnf(format, args...) }
func (l zapAdapter) Infof(format string, args ...any)    { l.log.Debugf(format, args...) }
func (l zapAdapter) Debugf(format string, args ...any)   { l.log.Debugf(format, args...) }

// NewStore opens a Badger store. An empty DataDir defaults to ~/.mashruteh/data.
func NewStore(opts Options) (*Store, error) {
	var bopts badger.Options
	path := ":memory:"

	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dataDir := opts.DataDir
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".mashruteh", "data")
		}
		path = filepath.Join(dataDir, dirName)
		if err := os.MkdirAll(path, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		bopts = badger.DefaultOptions(path).WithSyncWrites(true)
	}

	bopts = bopts.
		WithNumVersionsToKeep(1).
		WithLogger(zapAdapter{log: logger.L().Named("badger").Sugar()})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database directory, or ":memory:".
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return string(value), true, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
