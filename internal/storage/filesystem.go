package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore writes edited images below a root directory. The CLI uses it to
// persist results; the HTTP API returns images inline and keeps nothing.
type FileStore struct {
	basePath string
	now      func() time.Time
}

// NewFileStore creates the root directory when missing.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, now: time.Now}, nil
}

func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Path returns the absolute location of a key returned by Write.
func (s *FileStore) Path(key string) (string, error) {
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleanKey)), nil
}

// SaveEdit stores one edited image as edits/<yyyy-mm-dd>/<uuid>.<format>.
func (s *FileStore) SaveEdit(ctx context.Context, format string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("storage: empty image")
	}
	ext := strings.ToLower(strings.TrimSpace(format))
	switch ext {
	case "jpg", "jpeg":
		ext = "jpeg"
	case "webp":
	default:
		ext = "png"
	}
	key := fmt.Sprintf("edits/%s/%s.%s", s.now().UTC().Format("2006-01-02"), uuid.NewString(), ext)
	return s.Write(ctx, key, data)
}

// Write stores data at key and returns the cleaned key.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return cleanKey, nil
}

// sanitizeKey keeps keys relative to the root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimLeft(strings.TrimPrefix(key, "./"), "/")
	cleaned := strings.ReplaceAll(filepath.Clean(key), "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
