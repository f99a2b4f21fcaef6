package postgres

import (
	"context"
	"database/sql"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"
)

type programRepository struct {
	db *sql.DB
}

func NewProgramRepository(db *sql.DB) repository.ProgramRepository {
	return &programRepository{db: db}
}

const programColumns = `id, name, COALESCE(description, ''), COALESCE(state, ''), COALESCE(active, false),
	       COALESCE(is_multiple_form_submission, false), COALESCE(is_reimbursement_program, false),
	       self_service_portal_form, supporting_documents_store, company_id, create_date`

func scanProgram(row interface{ Scan(...any) error }) (*domain.Program, error) {
	p := &domain.Program{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.State, &p.Active,
		&p.IsMultipleFormSubmission, &p.IsReimbursementProgram,
		&p.SelfServicePortalForm, &p.SupportingDocumentsStore, &p.CompanyID, &p.CreateDate)
	if err != nil {
		return nil, err
	}
	p.IsPortalFormMapped = p.PortalFormMapped()
	return p, nil
}

func (r *programRepository) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	query := `SELECT ` + programColumns + ` FROM g2p_program WHERE id = $1`
	p, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *programRepository) ListActive(ctx context.Context) ([]domain.Program, error) {
	query := `SELECT ` + programColumns + ` FROM g2p_program
	          WHERE state != 'inactive' AND state != 'ended' AND active = true
	            AND (is_reimbursement_program = false OR is_reimbursement_program IS NULL)
	          ORDER BY create_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPrograms(rows)
}

// SearchByName runs two passes so exact-case matches sort ahead of matches
// that only hit case-insensitively, mirroring the portal's discovery ranking.
func (r *programRepository) SearchByName(ctx context.Context, keyword string) ([]domain.Program, error) {
	pattern := "%" + keyword + "%"

	exact := `SELECT ` + programColumns + ` FROM g2p_program
	          WHERE name LIKE $1 ORDER BY create_date DESC`
	rows, err := r.db.QueryContext(ctx, exact, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	programs, err := collectPrograms(rows)
	if err != nil {
		return nil, err
	}

	rest := `SELECT ` + programColumns + ` FROM g2p_program
	         WHERE name ILIKE $1 AND name NOT LIKE $1 ORDER BY create_date DESC`
	restRows, err := r.db.QueryContext(ctx, rest, pattern)
	if err != nil {
		return nil, err
	}
	defer restRows.Close()
	more, err := collectPrograms(restRows)
	if err != nil {
		return nil, err
	}
	return append(programs, more...), nil
}

func (r *programRepository) GetFormSchema(ctx context.Context, formID int64) (*domain.FormSchema, error) {
	f := &domain.FormSchema{}
	query := `SELECT id, COALESCE(schema, '') FROM formio_builder WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, formID).Scan(&f.ID, &f.Schema)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func collectPrograms(rows *sql.Rows) ([]domain.Program, error) {
	var programs []domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}
