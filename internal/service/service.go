package service

import (
	"context"

	"g2p-portal-backend/internal/domain"
)

type FormService interface {
	// GetForm assembles the program form view: program metadata, mapped form
	// schema (if any) and the registrant's draft payload as prefill.
	GetForm(ctx context.Context, programID, registrantID int64) (*domain.ProgramForm, error)
	// SaveDraft creates or overwrites the single draft for the pair and
	// returns a confirmation message.
	SaveDraft(ctx context.Context, programID, registrantID int64, payload map[string]any) (string, error)
	// Submit runs the full submission flow: policy gates, membership,
	// application id generation, partner field reconciliation, atomic record
	// + draft promotion.
	Submit(ctx context.Context, programID, registrantID int64, payload map[string]any) (*domain.SubmissionReceipt, error)
}

type MembershipService interface {
	// EnsureMembership returns the membership id for the pair, creating the
	// record with state "draft" when absent. Idempotent.
	EnsureMembership(ctx context.Context, programID, partnerID int64) (int64, error)
}

type PartnerService interface {
	// Reconcile writes allow-listed non-empty payload fields back to the
	// registrant record and returns the names of the fields it updated.
	Reconcile(ctx context.Context, registrantID int64, fields map[string]any) ([]string, error)
	GetProfile(ctx context.Context, partnerID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, partnerID int64, fields map[string]any) ([]string, error)
}

type ProgramService interface {
	ListPrograms(ctx context.Context, registrantID int64) ([]domain.Program, error)
	GetProgram(ctx context.Context, programID, registrantID int64) (*domain.Program, error)
	Search(ctx context.Context, keyword string) ([]domain.Program, error)
	ProgramSummary(ctx context.Context, partnerID int64) ([]domain.ProgramSummary, error)
	ApplicationDetails(ctx context.Context, partnerID int64) ([]domain.ApplicationDetails, error)
	BenefitDetails(ctx context.Context, partnerID int64) ([]domain.BenefitDetails, error)
}

type DocumentService interface {
	Upload(ctx context.Context, programID int64, filename string, data []byte, fileTag string) (*domain.DocumentFile, error)
	GetByID(ctx context.Context, documentID int64) (*domain.DocumentFile, error)
}

type EmailService interface {
	SendApplicationSubmitted(ctx context.Context, toEmail, toName, programName, applicationID string) error
}
