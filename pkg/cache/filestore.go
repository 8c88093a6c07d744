package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per sanitized key under a process-local
// directory, created on demand. No external consumer reads these files.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(addr string) string {
	return filepath.Join(s.dir, addr+".json")
}

func (s *FileStore) Read(addr string) ([]byte, error) {
	data, err := os.ReadFile(s.path(addr))
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

func (s *FileStore) Write(addr string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path(addr), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
