package repository

import (
	"context"
	"time"

	"g2p-portal-backend/internal/domain"
)

type ProgramRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
	// ListActive returns portal-visible programs: active, not inactive/ended,
	// not reimbursement programs, newest first.
	ListActive(ctx context.Context) ([]domain.Program, error)
	// SearchByName matches the keyword case-insensitively; exact-case matches
	// are ranked before case-insensitive-only ones.
	SearchByName(ctx context.Context, keyword string) ([]domain.Program, error)
	GetFormSchema(ctx context.Context, formID int64) (*domain.FormSchema, error)
}

type MembershipRepository interface {
	GetByProgramAndPartner(ctx context.Context, programID, partnerID int64) (*domain.Membership, error)
	Create(ctx context.Context, m *domain.Membership) error
}

type RegistrantInfoRepository interface {
	GetLatestByMembership(ctx context.Context, membershipID int64) (*domain.RegistrantInfo, error)
	CountByProgramAndRegistrant(ctx context.Context, programID, registrantID int64) (int64, error)
	HasLiveApplication(ctx context.Context, programID, registrantID int64) (bool, error)
	// CreateClearingDraft inserts the submission row and, when clearDraft is
	// set, deletes the pair's draft in the same database transaction. Either
	// both effects commit or neither does.
	CreateClearingDraft(ctx context.Context, info *domain.RegistrantInfo, clearDraft bool) error
}

type DraftRepository interface {
	Get(ctx context.Context, programID, registrantID int64) (*domain.Draft, error)
	Create(ctx context.Context, d *domain.Draft) error
	UpdatePayload(ctx context.Context, id int64, payload map[string]any) error
	// DeleteStaleWithLiveApplication removes drafts older than the cutoff
	// whose pair already has a live application, returning the purged count.
	DeleteStaleWithLiveApplication(ctx context.Context, cutoff time.Time) (int64, error)
}

type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
	// ListColumns discovers the live res_partner column set from
	// information_schema; it is the source for the field allow-list cache.
	ListColumns(ctx context.Context) ([]string, error)
	// UpdateFields writes the given columns. Callers are responsible for
	// restricting keys to the discovered allow-list.
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	GetRegistrantIDs(ctx context.Context, partnerID int64) ([]domain.RegistrantID, error)
	GetBankDetails(ctx context.Context, partnerID int64) ([]domain.BankDetails, error)
	GetPhoneNumbers(ctx context.Context, partnerID int64) ([]domain.PhoneNumber, error)
}

type SummaryRepository interface {
	ProgramSummary(ctx context.Context, partnerID int64) ([]domain.ProgramSummary, error)
	ApplicationDetails(ctx context.Context, partnerID int64) ([]domain.ApplicationDetails, error)
	BenefitDetails(ctx context.Context, partnerID int64) ([]domain.BenefitDetails, error)
}

type DocumentRepository interface {
	CreateFile(ctx context.Context, f *domain.DocumentFile) error
	GetFileByID(ctx context.Context, id int64) (*domain.DocumentFile, error)
	SetSlug(ctx context.Context, id int64, slug, relativePath string) error
	GetBackendByID(ctx context.Context, id int64) (*domain.DocumentStore, error)
	// GetProgramStore resolves the storage backend and company configured on
	// a program's supporting_documents_store.
	GetProgramStore(ctx context.Context, programID int64) (companyID *int64, backendID int64, err error)
	UpsertTag(ctx context.Context, name string) error
}
