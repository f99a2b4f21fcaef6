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

type registrantInfoRepository struct {
	db *sql.DB
}

func NewRegistrantInfoRepository(db *sql.DB) repository.RegistrantInfoRepository {
	return &registrantInfoRepository{db: db}
}

func (r *registrantInfoRepository) GetLatestByMembership(ctx context.Context, membershipID int64) (*domain.RegistrantInfo, error) {
	info := &domain.RegistrantInfo{}
	var payload []byte
	query := `SELECT id, program_id, program_membership_id, registrant_id, program_registrant_info,
	                 COALESCE(state, ''), COALESCE(application_id, ''), create_date
	          FROM g2p_program_registrant_info
	          WHERE program_membership_id = $1 ORDER BY create_date DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, membershipID).
		Scan(&info.ID, &info.ProgramID, &info.MembershipID, &info.RegistrantID,
			&payload, &info.State, &info.ApplicationID, &info.CreateDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &info.Payload); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func (r *registrantInfoRepository) CountByProgramAndRegistrant(ctx context.Context, programID, registrantID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM g2p_program_registrant_info WHERE program_id = $1 AND registrant_id = $2`
	err := r.db.QueryRowContext(ctx, query, programID, registrantID).Scan(&count)
	return count, err
}

func (r *registrantInfoRepository) HasLiveApplication(ctx context.Context, programID, registrantID int64) (bool, error) {
	var count int64
	query := `SELECT count(*) FROM g2p_program_registrant_info
	          WHERE program_id = $1 AND registrant_id = $2 AND state = ANY($3)`
	err := r.db.QueryRowContext(ctx, query, programID, registrantID,
		pq.Array(domain.LiveApplicationStates)).Scan(&count)
	return count > 0, err
}

// CreateClearingDraft promotes a submission in one transaction: insert the
// registrant info row and drop the pair's draft. A failed insert leaves the
// draft untouched.
func (r *registrantInfoRepository) CreateClearingDraft(ctx context.Context, info *domain.RegistrantInfo, clearDraft bool) error {
	payload, err := json.Marshal(info.Payload)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	now := time.Now()
	insert := `INSERT INTO g2p_program_registrant_info
	           (program_id, program_membership_id, registrant_id, program_registrant_info,
	            state, application_id, create_date, write_date)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, create_date`
	err = tx.QueryRowContext(ctx, insert, info.ProgramID, info.MembershipID, info.RegistrantID,
		payload, info.State, info.ApplicationID, now, now).Scan(&info.ID, &info.CreateDate)
	if err != nil {
		tx.Rollback()
		return err
	}

	if clearDraft {
		del := `DELETE FROM g2p_program_registrant_info_draft WHERE program_id = $1 AND registrant_id = $2`
		if _, err := tx.ExecContext(ctx, del, info.ProgramID, info.RegistrantID); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
