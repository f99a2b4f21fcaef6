package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"

	"github.com/lib/pq"
)

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) repository.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Get(ctx context.Context, programID, registrantID int64) (*domain.Draft, error) {
	d := &domain.Draft{}
	var payload []byte
	query := `SELECT id, program_id, registrant_id, program_registrant_info, create_date
	          FROM g2p_program_registrant_info_draft WHERE program_id = $1 AND registrant_id = $2`
	err := r.db.QueryRowContext(ctx, query, programID, registrantID).
		Scan(&d.ID, &d.ProgramID, &d.RegistrantID, &payload, &d.CreateDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &d.Payload); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (r *draftRepository) Create(ctx context.Context, d *domain.Draft) error {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return err
	}
	query := `INSERT INTO g2p_program_registrant_info_draft
	          (program_id, registrant_id, program_registrant_info, create_date, write_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, d.ProgramID, d.RegistrantID, payload, now, now).Scan(&d.ID)
}

func (r *draftRepository) UpdatePayload(ctx context.Context, id int64, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	query := `UPDATE g2p_program_registrant_info_draft SET program_registrant_info = $1, write_date = $2 WHERE id = $3`
	_, err = r.db.ExecContext(ctx, query, data, time.Now(), id)
	return err
}

func (r *draftRepository) DeleteStaleWithLiveApplication(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM g2p_program_registrant_info_draft d
	          WHERE d.create_date < $1
	            AND EXISTS (
	              SELECT 1 FROM g2p_program_registrant_info i
	              WHERE i.program_id = d.program_id
	                AND i.registrant_id = d.registrant_id
	                AND i.state = ANY($2)
	            )`
	res, err := r.db.ExecContext(ctx, query, cutoff, pq.Array(domain.LiveApplicationStates))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
