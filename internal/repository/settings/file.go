package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nanssss/bipmap/internal/config"
)

// Store defines persistence operations for the beep settings.
type Store interface {
	Load(ctx context.Context) (*config.Config, error)
	Save(ctx context.Context, cfg *config.Config) error
}

// FileStore persists the beep settings to a YAML file on disk.
type FileStore struct {
	// path is the filesystem location of the YAML settings file.
	path string
	// mu protects concurrent access to the settings file.
	mu sync.Mutex
}

// ErrNotFound is returned when the settings file does not exist yet.
var ErrNotFound = errors.New("settings not found")

// NewFileStore creates a store that reads/writes YAML at the provided path.
// An empty path selects the default settings filename.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	return &FileStore{
		path: filepath.Clean(path),
	}
}

// Path returns the filesystem location the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings from disk.
func (s *FileStore) Load(_ context.Context) (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := config.Load(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to disk.
func (s *FileStore) Save(_ context.Context, cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return config.Save(s.path, cfg)
}

// LoadOrCreate returns the settings from the store, writing and returning
// the defaults when the store reports ErrNotFound.
func LoadOrCreate(ctx context.Context, store Store) (*config.Config, error) {
	cfg, err := store.Load(ctx)

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, ErrNotFound):
		cfg = config.Default()
		if err = store.Save(ctx, cfg); err != nil {
			return nil, fmt.Errorf("write default settings: %w", err)
		}

		return cfg, nil
	default:
		return nil, err
	}
}
