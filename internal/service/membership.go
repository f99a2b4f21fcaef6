package service

import (
	"context"
	"log/slog"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository"
	"g2p-portal-backend/internal/repository/postgres"
)

type membershipService struct {
	memberships repository.MembershipRepository
	log         *slog.Logger
}

func NewMembershipService(memberships repository.MembershipRepository) MembershipService {
	return &membershipService{
		memberships: memberships,
		log:         logger.WithService("membership"),
	}
}

func (s *membershipService) EnsureMembership(ctx context.Context, programID, partnerID int64) (int64, error) {
	existing, err := s.memberships.GetByProgramAndPartner(ctx, programID, partnerID)
	if err != nil {
		return 0, domain.WrapError(domain.KindInternal, "failed to look up program membership", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	m := &domain.Membership{
		ProgramID: programID,
		PartnerID: partnerID,
		State:     domain.MembershipStateDraft,
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		if postgres.IsIntegrityViolation(err) {
			// A concurrent request created the row between our read and
			// write. The unique constraint guarantees a single membership,
			// so re-read and use it.
			existing, lookupErr := s.memberships.GetByProgramAndPartner(ctx, programID, partnerID)
			if lookupErr == nil && existing != nil {
				return existing.ID, nil
			}
			return 0, domain.WrapError(domain.KindIntegrityViolation, "Error: Duplicate entry or integrity violation", err)
		}
		return 0, domain.WrapError(domain.KindInternal, "failed to create program membership", err)
	}
	s.log.Info("created program membership", "program_id", programID, "partner_id", partnerID, "membership_id", m.ID)
	return m.ID, nil
}
