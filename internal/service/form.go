package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/lock"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository"
	"g2p-portal-backend/internal/repository/postgres"
)

const (
	submitLockTTL = 30 * time.Second

	msgDraftSaved     = "Successfully submitted the draft!!"
	msgApplied        = "Successfully applied into the program!!"
	msgProgramMissing = "Program ID not Found."
)

type formService struct {
	programs    repository.ProgramRepository
	infos       repository.RegistrantInfoRepository
	drafts      repository.DraftRepository
	partners    repository.PartnerRepository
	memberships MembershipService
	partnerSvc  PartnerService
	email       EmailService
	locker      lock.Locker
	clock       func() time.Time
	log         *slog.Logger
}

// FormOption configures optional behavior of the form service.
type FormOption func(*formService)

// WithClock overrides the time source used for application ids.
func WithClock(clock func() time.Time) FormOption {
	return func(s *formService) { s.clock = clock }
}

func NewFormService(
	programs repository.ProgramRepository,
	infos repository.RegistrantInfoRepository,
	drafts repository.DraftRepository,
	partners repository.PartnerRepository,
	memberships MembershipService,
	partnerSvc PartnerService,
	email EmailService,
	locker lock.Locker,
	opts ...FormOption,
) FormService {
	s := &formService{
		programs:    programs,
		infos:       infos,
		drafts:      drafts,
		partners:    partners,
		memberships: memberships,
		partnerSvc:  partnerSvc,
		email:       email,
		locker:      locker,
		clock:       time.Now,
		log:         logger.WithService("form"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *formService) GetForm(ctx context.Context, programID, registrantID int64) (*domain.ProgramForm, error) {
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load program", err)
	}
	if program == nil {
		return nil, domain.ErrNotFound(msgProgramMissing)
	}

	form := &domain.ProgramForm{
		ProgramID:          program.ID,
		ProgramName:        program.Name,
		ProgramDescription: program.Description,
	}

	if program.SelfServicePortalForm != nil {
		schema, err := s.programs.GetFormSchema(ctx, *program.SelfServicePortalForm)
		if err != nil {
			return nil, domain.WrapError(domain.KindInternal, "failed to load form schema", err)
		}
		if schema != nil {
			form.FormID = &schema.ID
			form.Schema = &schema.Schema
		}
	}

	draft, err := s.drafts.Get(ctx, programID, registrantID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load draft", err)
	}
	if draft != nil {
		form.SubmissionData = draft.Payload
	}
	return form, nil
}

func (s *formService) SaveDraft(ctx context.Context, programID, registrantID int64, payload map[string]any) (string, error) {
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return "", domain.WrapError(domain.KindInternal, "failed to load program", err)
	}
	if program == nil {
		return "", domain.ErrNotFound(msgProgramMissing)
	}

	existing, err := s.drafts.Get(ctx, programID, registrantID)
	if err != nil {
		return "", domain.WrapError(domain.KindInternal, "failed to load draft", err)
	}

	if existing == nil {
		draft := &domain.Draft{
			ProgramID:    programID,
			RegistrantID: registrantID,
			Payload:      payload,
		}
		if err := s.drafts.Create(ctx, draft); err != nil {
			if postgres.IsIntegrityViolation(err) {
				return "", domain.WrapError(domain.KindIntegrityViolation, "Error: In creating the draft", err)
			}
			return "", domain.WrapError(domain.KindInternal, "Error: In creating the draft", err)
		}
	} else {
		if err := s.drafts.UpdatePayload(ctx, existing.ID, payload); err != nil {
			return "", domain.WrapError(domain.KindInternal, "Error: In updating the draft.", err)
		}
	}
	return msgDraftSaved, nil
}

func (s *formService) Submit(ctx context.Context, programID, registrantID int64, payload map[string]any) (*domain.SubmissionReceipt, error) {
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load program", err)
	}
	if program == nil {
		return nil, domain.ErrNotFound(msgProgramMissing)
	}

	release, err := s.locker.Acquire(ctx, submitLockKey(programID, registrantID), submitLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return nil, domain.ErrPolicy("Another submission for this program is already in progress.")
		}
		return nil, domain.WrapError(domain.KindInternal, "failed to acquire submission lock", err)
	}
	defer release()

	if !program.IsMultipleFormSubmission {
		count, err := s.infos.CountByProgramAndRegistrant(ctx, programID, registrantID)
		if err != nil {
			return nil, domain.WrapError(domain.KindInternal, "failed to count prior applications", err)
		}
		if count > 0 {
			return nil, domain.ErrPolicy("Multiple form submissions are not allowed for this program.")
		}
	}

	live, err := s.infos.HasLiveApplication(ctx, programID, registrantID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to check live applications", err)
	}
	if live {
		return nil, domain.ErrPolicy("There is already an active or in progress application for this program.")
	}

	membershipID, err := s.memberships.EnsureMembership(ctx, programID, registrantID)
	if err != nil {
		return nil, err
	}

	draft, err := s.drafts.Get(ctx, programID, registrantID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load draft", err)
	}

	updated, err := s.partnerSvc.Reconcile(ctx, registrantID, payload)
	if err != nil {
		return nil, err
	}

	applicationID := newApplicationID(s.clock())

	info := &domain.RegistrantInfo{
		ProgramID:     programID,
		MembershipID:  membershipID,
		RegistrantID:  registrantID,
		Payload:       stripKeys(payload, updated),
		State:         domain.ApplicationStateActive,
		ApplicationID: applicationID,
	}
	if err := s.infos.CreateClearingDraft(ctx, info, draft != nil); err != nil {
		if postgres.IsIntegrityViolation(err) {
			return nil, domain.WrapError(domain.KindIntegrityViolation, "Error: Duplicate entry or integrity violation", err)
		}
		return nil, domain.WrapError(domain.KindInternal, "failed to record application", err)
	}

	s.log.Info("application submitted",
		"program_id", programID, "registrant_id", registrantID,
		"application_id", applicationID, "reconciled_fields", len(updated))

	s.notifySubmitted(ctx, registrantID, program.Name, applicationID)

	return &domain.SubmissionReceipt{
		ApplicationID: applicationID,
		Message:       fmt.Sprintf("%s Your application ID is %s.", msgApplied, applicationID),
	}, nil
}

// notifySubmitted sends the confirmation email when the registrant has an
// email on file. Failures are logged, never surfaced: the application is
// already recorded.
func (s *formService) notifySubmitted(ctx context.Context, registrantID int64, programName, applicationID string) {
	if s.email == nil {
		return
	}
	partner, err := s.partners.GetByID(ctx, registrantID)
	if err != nil || partner == nil || partner.Email == "" {
		return
	}
	if err := s.email.SendApplicationSubmitted(ctx, partner.Email, partner.Name, programName, applicationID); err != nil {
		s.log.Warn("failed to send submission email", "registrant_id", registrantID, "error", err)
	}
}

func submitLockKey(programID, registrantID int64) string {
	return fmt.Sprintf("submit:%d:%d", programID, registrantID)
}

// newApplicationID builds an 11-character id: DDMMYY date prefix followed by
// a zero-padded random number in [1, 100000).
func newApplicationID(t time.Time) string {
	return t.Format("020106") + fmt.Sprintf("%05d", rand.Intn(99999)+1)
}

// stripKeys returns a copy of payload without the given keys. The input map
// is never mutated.
func stripKeys(payload map[string]any, keys []string) map[string]any {
	if len(keys) == 0 {
		return payload
	}
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if _, ok := drop[k]; ok {
			continue
		}
		out[k] = v
	}
	return out
}
