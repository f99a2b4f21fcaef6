package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStorage stores documents under a local filestore root, for
// deployments where the ERP's storage backend is configured as "filesystem".
type FilesystemStorage struct {
	baseDir string
}

func NewFilesystem(filestorePath string) (*FilesystemStorage, error) {
	if filestorePath == "" {
		return nil, fmt.Errorf("filestore path required")
	}
	baseDir := filepath.Join(filestorePath, "storage")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStorage{baseDir: baseDir}, nil
}

// fullPath resolves key under the base directory and rejects traversal
// outside it.
func (f *FilesystemStorage) fullPath(key string) (string, error) {
	full := filepath.Join(f.baseDir, key)
	resolved, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(f.baseDir)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(resolved, base+string(os.PathSeparator)) && resolved != base {
		return "", fmt.Errorf("access to %s is forbidden", key)
	}
	return resolved, nil
}

func (f *FilesystemStorage) Put(_ context.Context, key string, r io.Reader, _ string) error {
	full, err := f.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	file, err := os.Create(full)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, r)
	return err
}

func (f *FilesystemStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}
