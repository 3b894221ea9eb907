package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one <collection>.json file per collection under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(c Collection) string {
	return filepath.Join(s.Dir, string(c)+".json")
}

func (s *FileStore) Load(_ context.Context, c Collection) ([]byte, error) {
	b, err := os.ReadFile(s.path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	return b, nil
}

// Save writes a sibling temp file and renames it over the collection so a
// crash never leaves a truncated document behind.
func (s *FileStore) Save(_ context.Context, c Collection, data []byte) error {
	tmp, err := os.CreateTemp(s.Dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}

	if err := os.Rename(tmp.Name(), s.path(c)); err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	return nil
}
