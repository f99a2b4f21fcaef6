package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository"
	"g2p-portal-backend/internal/storage"
)

type documentService struct {
	documents  repository.DocumentRepository
	newStorage func(ctx context.Context, backend *domain.DocumentStore) (storage.Storage, error)
	log        *slog.Logger
}

// DocumentOption configures optional behavior of the document service.
type DocumentOption func(*documentService)

// WithStorageFactory overrides how a storage client is built from a backend
// row.
func WithStorageFactory(factory func(ctx context.Context, backend *domain.DocumentStore) (storage.Storage, error)) DocumentOption {
	return func(s *documentService) { s.newStorage = factory }
}

func NewDocumentService(documents repository.DocumentRepository, filestorePath string, opts ...DocumentOption) DocumentService {
	s := &documentService{
		documents: documents,
		newStorage: func(ctx context.Context, backend *domain.DocumentStore) (storage.Storage, error) {
			return storage.ForBackend(ctx, backend, filestorePath)
		},
		log: logger.WithService("document"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) Upload(ctx context.Context, programID int64, filename string, data []byte, fileTag string) (*domain.DocumentFile, error) {
	companyID, backendID, err := s.documents.GetProgramStore(ctx, programID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load program document store", err)
	}
	if backendID == 0 {
		return nil, domain.ErrPolicy("No document store is configured for the given program.")
	}

	backend, err := s.documents.GetBackendByID(ctx, backendID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load storage backend", err)
	}
	if backend == nil {
		return nil, domain.ErrPolicy(fmt.Sprintf("The backend %d is invalid or does not exist.", backendID))
	}

	store, err := s.newStorage(ctx, backend)
	if err != nil {
		return nil, err
	}

	if fileTag != "" {
		if err := s.documents.UpsertTag(ctx, fileTag); err != nil {
			return nil, domain.WrapError(domain.KindInternal, "failed to record file tag", err)
		}
	}

	sum := sha1.Sum(data)
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	mimetype := mime.TypeByExtension(filepath.Ext(filename))
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	file := &domain.DocumentFile{
		Name:          filename,
		FileSize:      int64(len(data)),
		HumanFileSize: humanFileSize(int64(len(data))),
		Checksum:      hex.EncodeToString(sum[:]),
		Filename:      filename,
		Extension:     ext,
		Mimetype:      mimetype,
		CompanyID:     companyID,
		BackendID:     backendID,
		Active:        true,
	}
	if err := s.documents.CreateFile(ctx, file); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to create document record", err)
	}

	// The slug doubles as the object key, suffixed with the row id so two
	// uploads of the same filename never collide.
	slug := fmt.Sprintf("%s-%d", slugify(filename), file.ID)
	if err := s.documents.SetSlug(ctx, file.ID, slug, slug); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to set document slug", err)
	}
	file.Slug = slug
	file.RelativePath = slug

	if err := store.Put(ctx, slug, bytes.NewReader(data), mimetype); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to store document contents", err)
	}

	s.log.Info("document uploaded", "program_id", programID, "file_id", file.ID, "size", file.FileSize, "tag", fileTag)
	return file, nil
}

func (s *documentService) GetByID(ctx context.Context, documentID int64) (*domain.DocumentFile, error) {
	file, err := s.documents.GetFileByID(ctx, documentID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load document", err)
	}
	if file == nil {
		return nil, domain.ErrNotFound("Document not found.")
	}
	return file, nil
}

// slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single dash.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func humanFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
