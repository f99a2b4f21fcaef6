package postgres

import (
	"context"
	"database/sql"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"
)

type summaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

// ProgramSummary aggregates, per (program, enrollment state), the approved
// entitlement total and the paid total. Outer joins keep memberships without
// entitlements or payments visible with zero sums; funds awaited is derived
// from the two sums after scanning.
func (r *summaryRepository) ProgramSummary(ctx context.Context, partnerID int64) ([]domain.ProgramSummary, error) {
	query := `SELECT COALESCE(p.name, ''), COALESCE(m.state, ''),
	                 COALESCE(SUM(e.initial_amount), 0), COALESCE(SUM(pay.amount_paid), 0)
	          FROM g2p_program_membership m
	          LEFT JOIN g2p_program p ON m.program_id = p.id
	          LEFT JOIN g2p_cycle c ON m.program_id = c.program_id
	          LEFT JOIN g2p_cycle_membership cm ON m.partner_id = cm.partner_id AND c.id = cm.cycle_id
	          LEFT JOIN g2p_entitlement e ON cm.partner_id = e.partner_id AND cm.cycle_id = e.cycle_id AND e.state = 'approved'
	          LEFT JOIN g2p_payment pay ON e.id = pay.entitlement_id AND pay.status = 'paid'
	          LEFT JOIN (
	              SELECT i.program_id, MAX(i.create_date) AS latest_application_date
	              FROM g2p_program_registrant_info i
	              JOIN g2p_program_membership mm
	                ON mm.partner_id = i.registrant_id AND mm.program_id = i.program_id
	              WHERE mm.partner_id = $1
	              GROUP BY i.program_id
	          ) latest ON p.id = latest.program_id
	          WHERE m.partner_id = $1
	          GROUP BY p.name, m.state, latest.latest_application_date
	          ORDER BY latest.latest_application_date DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.ProgramSummary
	for rows.Next() {
		var s domain.ProgramSummary
		var entitled, paid float64
		if err := rows.Scan(&s.ProgramName, &s.EnrollmentStatus, &entitled, &paid); err != nil {
			return nil, err
		}
		s.TotalFundsAwaited = entitled - paid
		s.TotalFundsReceived = paid
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *summaryRepository) ApplicationDetails(ctx context.Context, partnerID int64) ([]domain.ApplicationDetails, error) {
	query := `SELECT COALESCE(p.name, ''), COALESCE(i.application_id, ''), i.create_date, COALESCE(i.state, '')
	          FROM g2p_program_registrant_info i
	          LEFT JOIN g2p_program_membership m
	            ON m.partner_id = i.registrant_id AND m.program_id = i.program_id
	          LEFT JOIN g2p_program p ON m.program_id = p.id
	          WHERE m.partner_id = $1
	          ORDER BY i.create_date DESC`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.ApplicationDetails
	for rows.Next() {
		var d domain.ApplicationDetails
		if err := rows.Scan(&d.ProgramName, &d.ApplicationID, &d.DateApplied, &d.ApplicationStatus); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *summaryRepository) BenefitDetails(ctx context.Context, partnerID int64) ([]domain.BenefitDetails, error) {
	query := `SELECT COALESCE(p.name, ''), e.date_approved,
	                 COALESCE(e.initial_amount, 0), COALESCE(pay.amount_paid, 0), e.ern
	          FROM g2p_program_membership m
	          LEFT JOIN g2p_program p ON m.program_id = p.id
	          LEFT JOIN g2p_cycle c ON m.program_id = c.program_id
	          LEFT JOIN g2p_cycle_membership cm ON m.partner_id = cm.partner_id AND c.id = cm.cycle_id
	          LEFT JOIN g2p_entitlement e ON cm.partner_id = e.partner_id AND cm.cycle_id = e.cycle_id AND e.state = 'approved'
	          LEFT JOIN g2p_payment pay ON e.id = pay.entitlement_id AND pay.status = 'paid'
	          WHERE m.partner_id = $1
	            AND (e.ern IS NOT NULL OR e.initial_amount != 0 OR pay.amount_paid != 0)
	          ORDER BY e.date_approved DESC`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.BenefitDetails
	for rows.Next() {
		var d domain.BenefitDetails
		var entitled, paid float64
		if err := rows.Scan(&d.ProgramName, &d.DateApproved, &entitled, &paid, &d.EntitlementReferenceNumber); err != nil {
			return nil, err
		}
		d.FundsAwaited = entitled - paid
		d.FundsReceived = paid
		details = append(details, d)
	}
	return details, rows.Err()
}
