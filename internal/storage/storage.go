package storage

import (
	"context"
	"io"

	"g2p-portal-backend/internal/domain"
)

// Storage stores document bytes by key. Metadata lives in storage_file; the
// backend only ever sees opaque keys.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// ForBackend builds the storage implementation configured on a
// storage_backend row. filestorePath is the root for filesystem backends.
func ForBackend(ctx context.Context, backend *domain.DocumentStore, filestorePath string) (Storage, error) {
	switch backend.BackendType() {
	case domain.BackendTypeS3:
		return NewS3FromBackend(ctx, backend)
	case domain.BackendTypeFilesystem:
		return NewFilesystem(filestorePath)
	default:
		return nil, domain.ErrPolicy("Backend type not configured for the given programid.")
	}
}
