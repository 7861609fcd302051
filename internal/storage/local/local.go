package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps blobs on the local filesystem, served from a static URL
// base. Used for local development when no S3 bucket is configured.
type Storage struct {
	baseDir    string
	staticBase string
}

func New(baseDir, staticBase string) *Storage {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &Storage{baseDir: baseDir, staticBase: staticBase}
}

// BaseDir is the directory to mount as the static file root.
func (s *Storage) BaseDir() string { return s.baseDir }

func (s *Storage) Upload(_ context.Context, body io.Reader, folder, name, _ string) (string, string, error) {
	absDir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload directory: %w", err)
	}

	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		_ = os.Remove(absPath)
		return "", "", fmt.Errorf("write file: %w", err)
	}

	key := folder + "/" + name
	url := s.staticBase + "/" + strings.ReplaceAll(key, "\\", "/")
	return url, key, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.baseDir, key))
}

func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, key))
	if err != nil {
		return nil, "", err
	}
	return f, "application/octet-stream", nil
}
