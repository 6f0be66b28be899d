package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"CourseHub/internal/models"
)

// Store holds the current credential pair. Implementations must never expose
// a partial pair: either both halves are present or the pair is absent.
type Store interface {
	// Load returns the persisted pair, or nil when no complete pair exists.
	Load() (*models.Credentials, error)
	Save(pair models.Credentials) error
	Clear() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// MemoryStore keeps the pair in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	pair *models.Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil || s.pair.Empty() {
		return nil, nil
	}
	p := *s.pair
	return &p, nil
}

func (s *MemoryStore) Save(pair models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pair
	s.pair = &p
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}

const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
)

// FileStore persists the pair under two distinct files in one directory, so
// it survives process restarts. Absence of either half is treated as absence
// of both.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load() (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := os.ReadFile(filepath.Join(s.dir, accessTokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	refresh, err := os.ReadFile(filepath.Join(s.dir, refreshTokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	pair := models.Credentials{AccessToken: string(access), RefreshToken: string(refresh)}
	if pair.Empty() {
		return nil, nil
	}
	return &pair, nil
}

func (s *FileStore) Save(pair models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Refresh half lands first: a crash between the writes leaves an
	// incomplete pair, which Load already treats as absent.
	if err := writeFileAtomic(filepath.Join(s.dir, refreshTokenFile), []byte(pair.RefreshToken)); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, accessTokenFile), []byte(pair.AccessToken))
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := removeIfExists(filepath.Join(s.dir, accessTokenFile)); err != nil {
		return err
	}
	return removeIfExists(filepath.Join(s.dir, refreshTokenFile))
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
