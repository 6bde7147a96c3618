package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalService stores assets as plain files under a root directory.
type LocalService struct {
	root string
}

func NewLocalService(root string) (*LocalService, error) {
	if root == "" {
		return nil, fmt.Errorf("uploads directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalService{root: filepath.Clean(root)}, nil
}

func (s *LocalService) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	path := filepath.Join(s.root, filepath.Base(key))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write asset file: %w", err)
	}
	return filepath.ToSlash(path), nil
}

func (s *LocalService) Remove(ctx context.Context, location string) error {
	clean := filepath.Clean(filepath.FromSlash(location))

	// only ever delete inside the uploads root
	rel, err := filepath.Rel(s.root, clean)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("asset location %s outside uploads dir", location)
	}

	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}
