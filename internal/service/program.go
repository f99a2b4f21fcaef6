package service

import (
	"context"
	"log/slog"
	"strings"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository"
)

type programService struct {
	programs    repository.ProgramRepository
	memberships repository.MembershipRepository
	infos       repository.RegistrantInfoRepository
	summaries   repository.SummaryRepository
	log         *slog.Logger
}

func NewProgramService(
	programs repository.ProgramRepository,
	memberships repository.MembershipRepository,
	infos repository.RegistrantInfoRepository,
	summaries repository.SummaryRepository,
) ProgramService {
	return &programService{
		programs:    programs,
		memberships: memberships,
		infos:       infos,
		summaries:   summaries,
		log:         logger.WithService("program"),
	}
}

func (s *programService) ListPrograms(ctx context.Context, registrantID int64) ([]domain.Program, error) {
	programs, err := s.programs.ListActive(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to list programs", err)
	}
	for i := range programs {
		if err := s.annotate(ctx, &programs[i], registrantID); err != nil {
			return nil, err
		}
	}
	return programs, nil
}

func (s *programService) GetProgram(ctx context.Context, programID, registrantID int64) (*domain.Program, error) {
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load program", err)
	}
	if program == nil {
		return nil, domain.ErrNotFound(msgProgramMissing)
	}
	if err := s.annotate(ctx, program, registrantID); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) Search(ctx context.Context, keyword string) ([]domain.Program, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []domain.Program{}, nil
	}
	programs, err := s.programs.SearchByName(ctx, keyword)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to search programs", err)
	}
	return programs, nil
}

func (s *programService) ProgramSummary(ctx context.Context, partnerID int64) ([]domain.ProgramSummary, error) {
	summaries, err := s.summaries.ProgramSummary(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load program summary", err)
	}
	return summaries, nil
}

func (s *programService) ApplicationDetails(ctx context.Context, partnerID int64) ([]domain.ApplicationDetails, error) {
	details, err := s.summaries.ApplicationDetails(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load application details", err)
	}
	return details, nil
}

func (s *programService) BenefitDetails(ctx context.Context, partnerID int64) ([]domain.BenefitDetails, error) {
	details, err := s.summaries.BenefitDetails(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load benefit details", err)
	}
	return details, nil
}

// annotate fills the registrant-relative fields on a program: whether the
// registrant has a membership and the state of their newest application.
func (s *programService) annotate(ctx context.Context, p *domain.Program, registrantID int64) error {
	membership, err := s.memberships.GetByProgramAndPartner(ctx, p.ID, registrantID)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "failed to load membership", err)
	}
	hasApplied := membership != nil
	p.HasApplied = &hasApplied
	if membership == nil {
		return nil
	}
	latest, err := s.infos.GetLatestByMembership(ctx, membership.ID)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "failed to load latest application", err)
	}
	if latest != nil {
		state := latest.State
		p.LastApplicationStatus = &state
	}
	return nil
}
