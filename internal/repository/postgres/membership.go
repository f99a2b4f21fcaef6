package postgres

import (
	"context"
	"database/sql"
	"time"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetByProgramAndPartner(ctx context.Context, programID, partnerID int64) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT id, program_id, partner_id, COALESCE(state, ''), create_date
	          FROM g2p_program_membership WHERE program_id = $1 AND partner_id = $2`
	err := r.db.QueryRowContext(ctx, query, programID, partnerID).
		Scan(&m.ID, &m.ProgramID, &m.PartnerID, &m.State, &m.CreateDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO g2p_program_membership (program_id, partner_id, state, create_date, write_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, m.ProgramID, m.PartnerID, m.State, now, now).Scan(&m.ID)
}
