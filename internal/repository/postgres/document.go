package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateFile(ctx context.Context, f *domain.DocumentFile) error {
	query := `INSERT INTO storage_file
	          (name, backend_id, file_size, human_file_size, checksum, filename, extension,
	           mimetype, company_id, active, create_date, write_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, f.Name, f.BackendID, f.FileSize, f.HumanFileSize,
		f.Checksum, f.Filename, f.Extension, f.Mimetype, f.CompanyID, f.Active, now, now).Scan(&f.ID)
}

func (r *documentRepository) GetFileByID(ctx context.Context, id int64) (*domain.DocumentFile, error) {
	f := &domain.DocumentFile{}
	query := `SELECT id, COALESCE(name, ''), COALESCE(slug, ''), COALESCE(relative_path, ''),
	                 COALESCE(file_size, 0), COALESCE(human_file_size, ''), COALESCE(checksum, ''),
	                 COALESCE(filename, ''), COALESCE(extension, ''), COALESCE(mimetype, ''),
	                 company_id, backend_id, COALESCE(active, false)
	          FROM storage_file WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.Name, &f.Slug, &f.RelativePath, &f.FileSize, &f.HumanFileSize,
			&f.Checksum, &f.Filename, &f.Extension, &f.Mimetype, &f.CompanyID, &f.BackendID, &f.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *documentRepository) SetSlug(ctx context.Context, id int64, slug, relativePath string) error {
	query := `UPDATE storage_file SET slug = $1, relative_path = $2, write_date = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, slug, relativePath, time.Now(), id)
	return err
}

func (r *documentRepository) GetBackendByID(ctx context.Context, id int64) (*domain.DocumentStore, error) {
	s := &domain.DocumentStore{}
	var envDefaults []byte
	query := `SELECT id, COALESCE(name, ''), server_env_defaults, COALESCE(is_public, false)
	          FROM storage_backend WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &envDefaults, &s.IsPublic)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(envDefaults) > 0 {
		if err := json.Unmarshal(envDefaults, &s.ServerEnvDefaults); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *documentRepository) GetProgramStore(ctx context.Context, programID int64) (*int64, int64, error) {
	var companyID *int64
	var backendID sql.NullInt64
	query := `SELECT company_id, supporting_documents_store FROM g2p_program WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, programID).Scan(&companyID, &backendID)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	if !backendID.Valid {
		return companyID, 0, nil
	}
	return companyID, backendID.Int64, nil
}

func (r *documentRepository) UpsertTag(ctx context.Context, name string) error {
	// Tag names are unique by convention in g2p_document_tag; insert only
	// when absent.
	query := `INSERT INTO g2p_document_tag (name, create_date, write_date)
	          SELECT $1, $2, $2
	          WHERE NOT EXISTS (SELECT 1 FROM g2p_document_tag WHERE name = $1)`
	_, err := r.db.ExecContext(ctx, query, name, time.Now())
	return err
}
