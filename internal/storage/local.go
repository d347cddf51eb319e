package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes uploads to a directory on disk. Files are served by
// the router under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores the stream under a random name, keeping the original
// extension, and returns the public URL.
func (s *LocalStorage) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, filename string) error {
	name := filepath.Base(filename)
	err := os.Remove(filepath.Join(s.basePath, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
