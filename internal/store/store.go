package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// Keys of the wholesale snapshots kept in the store.
const (
	KeyTasks    = "tasks"
	KeyDiary    = "diaryEntries"
	KeyBadges   = "earnedBadges"
	KeyChart    = "chartData"
	KeySessions = "sessionLog"
)

// Backend kinds accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Backend is a local key-value store holding textual blobs plus a small
// settings table.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	SeedSettings(defaults map[string]string) error
	AllSettings() ([]Setting, error)

	Close() error
}

type Store struct {
	backend Backend
}

// Options controls Open.
type Options struct {
	Backend  string
	Path     string
	Defaults map[string]string
}

// Open opens (or creates) the store at opts.Path with the requested backend
// and seeds any settings that are not present yet.
func Open(opts Options) (*Store, error) {
	if opts.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	var (
		b   Backend
		err error
	)
	switch opts.Backend {
	case "", BackendSQLite:
		b, err = openSQLite(opts.Path)
	case BackendBolt:
		b, err = openBolt(opts.Path)
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	defaults := opts.Defaults
	if defaults == nil {
		defaults = DefaultSettings()
	}
	if err := b.SeedSettings(defaults); err != nil {
		b.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	return &Store{backend: b}, nil
}

// New opens the SQLite store at dbPath with default settings.
func New(dbPath string) (*Store, error) {
	return Open(Options{Backend: BackendSQLite, Path: dbPath})
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load decodes the JSON blob stored under key into v. It reports false
// without error when the key is absent.
func (s *Store) Load(key string, v any) (bool, error) {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Save replaces the blob under key with the JSON encoding of v.
func (s *Store) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.backend.Put(key, data); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Raw returns the stored blob for key.
func (s *Store) Raw(key string) ([]byte, error) {
	return s.backend.Get(key)
}

func (s *Store) Delete(key string) error {
	return s.backend.Delete(key)
}

func (s *Store) Keys() ([]string, error) {
	return s.backend.Keys()
}

// DefaultDBPath returns ~/.config/focusboard/focusboard.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "focusboard", "focusboard.db"), nil
}
