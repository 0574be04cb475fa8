package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"slatelog/models"
)

// storageKey is the single key under which the whole project collection
// is persisted. The value is one JSON blob, rewritten in full on every save.
const storageKey = "vfxCameraLogProjects"

// Config holds configuration for the embedded store.
type Config struct {
	// Path is the directory for the database files. Ignored in memory mode.
	Path string

	// InMemory disables disk persistence. Used by tests.
	InMemory bool

	// Logger receives swallowed read/write failures. Defaults to a no-op.
	Logger *zap.Logger
}

// Store persists the project collection as a single blob in an embedded
// BadgerDB database. Read and write failures are logged and swallowed:
// a corrupt or missing blob must never block startup, and a failed write
// must never surface to the caller (the in-memory state stays authoritative
// for the session).
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) the database at cfg.Path.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Load reads the persisted project collection. Missing key, read failure,
// and malformed JSON all degrade to an empty collection. Optional fields
// absent from older blobs are normalized to empty slices.
func (s *Store) Load() []models.Project {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return []models.Project{}
	}
	if err != nil {
		s.logger.Error("failed to read projects from store", zap.Error(err))
		return []models.Project{}
	}

	var projects []models.Project
	if err := json.Unmarshal(blob, &projects); err != nil {
		s.logger.Error("failed to parse persisted projects", zap.Error(err))
		return []models.Project{}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	for i := range projects {
		projects[i].Normalize()
	}
	return projects
}

// Save serializes the full collection and replaces the previous blob.
// Failures (e.g. disk full) are logged and swallowed.
func (s *Store) Save(projects []models.Project) {
	blob, err := json.Marshal(projects)
	if err != nil {
		s.logger.Error("failed to serialize projects", zap.Error(err))
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey), blob)
	})
	if err != nil {
		s.logger.Error("failed to save projects to store", zap.Error(err))
	}
}

// Close closes the underlying database.
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close store", zap.Error(err))
	}
}
