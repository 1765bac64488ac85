package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Storage reads source pages and writes enhanced pages below a root directory.
type Storage struct {
	Root string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func New(root string) *Storage {
	return &Storage{Root: root}
}

// Path resolves a slash-separated relative name below the root.
func (s *Storage) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// SaveFile writes content to rel, creating parent directories as needed.
func (s *Storage) SaveFile(rel string, content []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(rel string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(rel string) (*FileStats, error) {
	info, err := os.Stat(s.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
