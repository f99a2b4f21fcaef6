package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"g2p-portal-backend/internal/domain"
)

type MockProgramRepo struct {
	mock.Mock
}

func (m *MockProgramRepo) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Program), args.Error(1)
}

func (m *MockProgramRepo) ListActive(ctx context.Context) ([]domain.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *MockProgramRepo) SearchByName(ctx context.Context, keyword string) ([]domain.Program, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *MockProgramRepo) GetFormSchema(ctx context.Context, formID int64) (*domain.FormSchema, error) {
	args := m.Called(ctx, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormSchema), args.Error(1)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) GetByProgramAndPartner(ctx context.Context, programID, partnerID int64) (*domain.Membership, error) {
	args := m.Called(ctx, programID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) Create(ctx context.Context, mem *domain.Membership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

type MockRegistrantInfoRepo struct {
	mock.Mock
}

func (m *MockRegistrantInfoRepo) GetLatestByMembership(ctx context.Context, membershipID int64) (*domain.RegistrantInfo, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrantInfo), args.Error(1)
}

func (m *MockRegistrantInfoRepo) CountByProgramAndRegistrant(ctx context.Context, programID, registrantID int64) (int64, error) {
	args := m.Called(ctx, programID, registrantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrantInfoRepo) HasLiveApplication(ctx context.Context, programID, registrantID int64) (bool, error) {
	args := m.Called(ctx, programID, registrantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrantInfoRepo) CreateClearingDraft(ctx context.Context, info *domain.RegistrantInfo, clearDraft bool) error {
	args := m.Called(ctx, info, clearDraft)
	return args.Error(0)
}

type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) Get(ctx context.Context, programID, registrantID int64) (*domain.Draft, error) {
	args := m.Called(ctx, programID, registrantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftRepo) Create(ctx context.Context, d *domain.Draft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDraftRepo) UpdatePayload(ctx context.Context, id int64, payload map[string]any) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockDraftRepo) DeleteStaleWithLiveApplication(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockPartnerRepo struct {
	mock.Mock
}

func (m *MockPartnerRepo) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepo) ListColumns(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPartnerRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockPartnerRepo) GetRegistrantIDs(ctx context.Context, partnerID int64) ([]domain.RegistrantID, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistrantID), args.Error(1)
}

func (m *MockPartnerRepo) GetBankDetails(ctx context.Context, partnerID int64) ([]domain.BankDetails, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankDetails), args.Error(1)
}

func (m *MockPartnerRepo) GetPhoneNumbers(ctx context.Context, partnerID int64) ([]domain.PhoneNumber, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhoneNumber), args.Error(1)
}

type MockSummaryRepo struct {
	mock.Mock
}

func (m *MockSummaryRepo) ProgramSummary(ctx context.Context, partnerID int64) ([]domain.ProgramSummary, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgramSummary), args.Error(1)
}

func (m *MockSummaryRepo) ApplicationDetails(ctx context.Context, partnerID int64) ([]domain.ApplicationDetails, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationDetails), args.Error(1)
}

func (m *MockSummaryRepo) BenefitDetails(ctx context.Context, partnerID int64) ([]domain.BenefitDetails, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BenefitDetails), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) EnsureMembership(ctx context.Context, programID, partnerID int64) (int64, error) {
	args := m.Called(ctx, programID, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) Reconcile(ctx context.Context, registrantID int64, fields map[string]any) ([]string, error) {
	args := m.Called(ctx, registrantID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPartnerService) GetProfile(ctx context.Context, partnerID int64) (*domain.Profile, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockPartnerService) UpdateProfile(ctx context.Context, partnerID int64, fields map[string]any) ([]string, error) {
	args := m.Called(ctx, partnerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApplicationSubmitted(ctx context.Context, toEmail, toName, programName, applicationID string) error {
	args := m.Called(ctx, toEmail, toName, programName, applicationID)
	return args.Error(0)
}
