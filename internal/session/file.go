package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileBlob persists the blob store as a single JSON file, the closest local
// analog of the browser's localStorage. Writes go through a temp file and
// rename so a crash never leaves a half-written session behind.
type FileBlob struct {
	mu   sync.Mutex
	path string
}

func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: path}
}

func (b *FileBlob) Get(_ context.Context, key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kv, err := b.load()
	if err != nil {
		return nil, false
	}
	val, ok := kv[key]
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

func (b *FileBlob) Set(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	kv, err := b.load()
	if err != nil {
		kv = map[string]string{}
	}
	kv[key] = string(data)
	return b.save(kv)
}

func (b *FileBlob) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	kv, err := b.load()
	if err != nil {
		return nil
	}
	if _, ok := kv[key]; !ok {
		return nil
	}
	delete(kv, key)
	return b.save(kv)
}

func (b *FileBlob) load() (map[string]string, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return nil, err
	}
	kv := map[string]string{}
	if err := json.Unmarshal(raw, &kv); err != nil {
		return nil, err
	}
	return kv, nil
}

func (b *FileBlob) save(kv map[string]string) error {
	raw, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}
