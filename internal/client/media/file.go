package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophcards/internal/filex"
)

// FileStore keeps objects in a local directory and returns file:// URLs.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: abs}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Save(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String(), nil
}
