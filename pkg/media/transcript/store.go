// Package transcript persists speech-to-text results keyed by content hash,
// so byte-identical uploads under different filenames hit the cache.
package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Store maps a content hash to a transcript. Entries are write-once,
// read-many; nothing is ever invalidated or evicted.
type Store interface {
	Get(key string) (string, bool)
	Put(key, transcript string) error
}

// FileStore keeps a hot in-memory map in front of a single JSON document.
// Every Put rewrites the full document through a temp file + rename, so a
// crash mid-write never leaves a corrupt cache behind.
type FileStore struct {
	path string

	mu  sync.Mutex
	hot *gocache.Cache
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		hot:  gocache.New(gocache.NoExpiration, 0),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A mangled cache file is not worth failing startup over; start
		// fresh and let the next Put overwrite it.
		return s, nil
	}
	for k, v := range entries {
		s.hot.Set(k, v, gocache.NoExpiration)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	v, ok := s.hot.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *FileStore) Put(key, transcript string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hot.Set(key, transcript, gocache.NoExpiration)
	return s.persist()
}

func (s *FileStore) persist() error {
	entries := make(map[string]string, s.hot.ItemCount())
	for k, item := range s.hot.Items() {
		entries[k] = item.Object.(string)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".transcripts-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
