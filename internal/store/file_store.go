package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bikerent/internal/domain"
)

const sessionFile = "session.json"

// fileFormat is the on-disk layout of session.json. Plain values are JSON
// strings; sealed values are sealedValue objects.
type fileFormat struct {
	Sealed bool                       `json:"sealed"`
	Values map[string]json.RawMessage `json:"values"`
}

// FileStore persists key-value pairs to <dir>/session.json.
type FileStore struct {
	dir        string
	passphrase string
	sealed     bool
	kdf        scryptParams
	mu         sync.Mutex
}

// NewFileStore returns a plaintext FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// NewSealedFileStore returns a FileStore that encrypts every value with a key
// derived from passphrase.
func NewSealedFileStore(dir, passphrase string) *FileStore {
	return &FileStore{dir: dir, passphrase: passphrase, sealed: true, kdf: defaultScrypt()}
}

// Path is the file backing the store.
func (s *FileStore) Path() string { return filepath.Join(s.dir, sessionFile) }

// Get returns the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return "", false, err
	}
	raw, ok := f.Values[key]
	if !ok {
		return "", false, nil
	}
	v, err := s.decode(key, raw)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	raw, err := s.encode(key, value)
	if err != nil {
		return err
	}
	f.Values[key] = raw
	return writeJSON(s.Path(), f, 0o600)
}

// Delete removes key. A missing key or file is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := f.Values[key]; !ok {
		return nil
	}
	delete(f.Values, key)
	if len(f.Values) == 0 {
		err := os.Remove(s.Path())
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return writeJSON(s.Path(), f, 0o600)
}

func (s *FileStore) load() (fileFormat, error) {
	f := fileFormat{Sealed: s.sealed}
	if err := readJSON(s.Path(), &f); err != nil {
		return fileFormat{}, fmt.Errorf("read %s: %w", s.Path(), err)
	}
	if f.Values == nil {
		f.Values = make(map[string]json.RawMessage)
	}
	if len(f.Values) > 0 && f.Sealed != s.sealed {
		if f.Sealed {
			return fileFormat{}, fmt.Errorf("%s is sealed: a passphrase is required", s.Path())
		}
		return fileFormat{}, fmt.Errorf("%s is not sealed: remove it or drop the passphrase", s.Path())
	}
	f.Sealed = s.sealed
	return f, nil
}

func (s *FileStore) encode(key, value string) (json.RawMessage, error) {
	if !s.sealed {
		return json.Marshal(value)
	}
	sv, err := seal(s.passphrase, key, []byte(value), s.kdf)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sv)
}

func (s *FileStore) decode(key string, raw json.RawMessage) (string, error) {
	if !s.sealed {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", fmt.Errorf("decode %q: %w", key, err)
		}
		return v, nil
	}
	var sv sealedValue
	if err := json.Unmarshal(raw, &sv); err != nil {
		return "", ErrWrongPassphrase
	}
	pt, err := open(s.passphrase, key, sv)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// Compile-time assertion that FileStore implements domain.KVStore.
var _ domain.KVStore = (*FileStore)(nil)
