package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/lock"
	"g2p-portal-backend/internal/service"
)

type formFixture struct {
	programs    *MockProgramRepo
	infos       *MockRegistrantInfoRepo
	drafts      *MockDraftRepo
	partners    *MockPartnerRepo
	memberships *MockMembershipService
	partnerSvc  *MockPartnerService
	email       *MockEmailService
	svc         service.FormService
}

func newFormFixture(opts ...service.FormOption) *formFixture {
	f := &formFixture{
		programs:    new(MockProgramRepo),
		infos:       new(MockRegistrantInfoRepo),
		drafts:      new(MockDraftRepo),
		partners:    new(MockPartnerRepo),
		memberships: new(MockMembershipService),
		partnerSvc:  new(MockPartnerService),
		email:       new(MockEmailService),
	}
	f.svc = service.NewFormService(
		f.programs, f.infos, f.drafts, f.partners,
		f.memberships, f.partnerSvc, f.email,
		lock.NewLocalLocker(), opts...)
	return f
}

func activeProgram(id int64) *domain.Program {
	formID := int64(9)
	return &domain.Program{
		ID:                    id,
		Name:                  "Cash Transfer",
		State:                 "active",
		Active:                true,
		SelfServicePortalForm: &formID,
		IsPortalFormMapped:    true,
	}
}

func TestFormService_Submit(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	t.Run("PromotesDraftAndStripsReconciledFields", func(t *testing.T) {
		f := newFormFixture(service.WithClock(func() time.Time { return fixedNow }))
		payload := map[string]any{"household_size": 4, "email": "amina@example.com"}

		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.infos.On("CountByProgramAndRegistrant", ctx, int64(7), int64(42)).Return(int64(0), nil)
		f.infos.On("HasLiveApplication", ctx, int64(7), int64(42)).Return(false, nil)
		f.memberships.On("EnsureMembership", ctx, int64(7), int64(42)).Return(int64(3), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(&domain.Draft{ID: 4, ProgramID: 7, RegistrantID: 42}, nil)
		f.partnerSvc.On("Reconcile", ctx, int64(42), payload).Return([]string{"email"}, nil)
		f.infos.On("CreateClearingDraft", ctx, mock.MatchedBy(func(info *domain.RegistrantInfo) bool {
			_, hasEmail := info.Payload["email"]
			return info.ProgramID == 7 &&
				info.MembershipID == 3 &&
				info.State == domain.ApplicationStateActive &&
				!hasEmail &&
				info.Payload["household_size"] == 4
		}), true).Return(nil)
		f.partners.On("GetByID", ctx, int64(42)).Return(&domain.Partner{ID: 42, Name: "Amina", Email: "amina@example.com"}, nil)
		f.email.On("SendApplicationSubmitted", ctx, "amina@example.com", "Amina", "Cash Transfer", mock.AnythingOfType("string")).Return(nil)

		receipt, err := f.svc.Submit(ctx, 7, 42, payload)
		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		assert.Regexp(t, regexp.MustCompile(`^020625\d{5}$`), receipt.ApplicationID)
		assert.Contains(t, receipt.Message, "Successfully applied into the program!!")
		assert.Contains(t, receipt.Message, receipt.ApplicationID)

		f.infos.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("NoDraftStillSubmits", func(t *testing.T) {
		f := newFormFixture()
		payload := map[string]any{"household_size": 2}

		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.infos.On("CountByProgramAndRegistrant", ctx, int64(7), int64(42)).Return(int64(0), nil)
		f.infos.On("HasLiveApplication", ctx, int64(7), int64(42)).Return(false, nil)
		f.memberships.On("EnsureMembership", ctx, int64(7), int64(42)).Return(int64(3), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(nil, nil)
		f.partnerSvc.On("Reconcile", ctx, int64(42), payload).Return(nil, nil)
		f.infos.On("CreateClearingDraft", ctx, mock.Anything, false).Return(nil)
		f.partners.On("GetByID", ctx, int64(42)).Return(nil, nil)

		receipt, err := f.svc.Submit(ctx, 7, 42, payload)
		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		f.infos.AssertExpectations(t)
	})

	t.Run("ProgramNotFound", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(99)).Return(nil, nil)

		receipt, err := f.svc.Submit(ctx, 99, 42, map[string]any{})
		assert.Nil(t, receipt)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("SingleSubmissionEnforced", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.infos.On("CountByProgramAndRegistrant", ctx, int64(7), int64(42)).Return(int64(1), nil)

		receipt, err := f.svc.Submit(ctx, 7, 42, map[string]any{})
		assert.Nil(t, receipt)
		assert.Equal(t, domain.KindPolicyViolation, domain.KindOf(err))
		f.infos.AssertNotCalled(t, "CreateClearingDraft", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MultipleSubmissionsAllowedSkipsCount", func(t *testing.T) {
		f := newFormFixture()
		program := activeProgram(7)
		program.IsMultipleFormSubmission = true

		f.programs.On("GetByID", ctx, int64(7)).Return(program, nil)
		f.infos.On("HasLiveApplication", ctx, int64(7), int64(42)).Return(false, nil)
		f.memberships.On("EnsureMembership", ctx, int64(7), int64(42)).Return(int64(3), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(nil, nil)
		f.partnerSvc.On("Reconcile", ctx, int64(42), mock.Anything).Return(nil, nil)
		f.infos.On("CreateClearingDraft", ctx, mock.Anything, false).Return(nil)
		f.partners.On("GetByID", ctx, int64(42)).Return(nil, nil)

		_, err := f.svc.Submit(ctx, 7, 42, map[string]any{})
		assert.NoError(t, err)
		f.infos.AssertNotCalled(t, "CountByProgramAndRegistrant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LiveApplicationBlocks", func(t *testing.T) {
		f := newFormFixture()
		program := activeProgram(7)
		program.IsMultipleFormSubmission = true

		f.programs.On("GetByID", ctx, int64(7)).Return(program, nil)
		f.infos.On("HasLiveApplication", ctx, int64(7), int64(42)).Return(true, nil)

		receipt, err := f.svc.Submit(ctx, 7, 42, map[string]any{})
		assert.Nil(t, receipt)
		assert.Equal(t, domain.KindPolicyViolation, domain.KindOf(err))
	})

	t.Run("EmailFailureDoesNotFailSubmit", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.infos.On("CountByProgramAndRegistrant", ctx, int64(7), int64(42)).Return(int64(0), nil)
		f.infos.On("HasLiveApplication", ctx, int64(7), int64(42)).Return(false, nil)
		f.memberships.On("EnsureMembership", ctx, int64(7), int64(42)).Return(int64(3), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(nil, nil)
		f.partnerSvc.On("Reconcile", ctx, int64(42), mock.Anything).Return(nil, nil)
		f.infos.On("CreateClearingDraft", ctx, mock.Anything, false).Return(nil)
		f.partners.On("GetByID", ctx, int64(42)).Return(&domain.Partner{ID: 42, Name: "Amina", Email: "amina@example.com"}, nil)
		f.email.On("SendApplicationSubmitted", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.NewError(domain.KindInternal, "provider down"))

		receipt, err := f.svc.Submit(ctx, 7, 42, map[string]any{})
		assert.NoError(t, err)
		assert.NotNil(t, receipt)
	})
}

func TestFormService_SaveDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesWhenAbsent", func(t *testing.T) {
		f := newFormFixture()
		payload := map[string]any{"name": "Amina"}

		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(nil, nil)
		f.drafts.On("Create", ctx, mock.MatchedBy(func(d *domain.Draft) bool {
			return d.ProgramID == 7 && d.RegistrantID == 42
		})).Return(nil)

		msg, err := f.svc.SaveDraft(ctx, 7, 42, payload)
		assert.NoError(t, err)
		assert.Equal(t, "Successfully submitted the draft!!", msg)
		f.drafts.AssertExpectations(t)
	})

	t.Run("UpdatesExisting", func(t *testing.T) {
		f := newFormFixture()
		payload := map[string]any{"name": "Amina", "age": 31}

		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(&domain.Draft{ID: 4, ProgramID: 7, RegistrantID: 42}, nil)
		f.drafts.On("UpdatePayload", ctx, int64(4), payload).Return(nil)

		msg, err := f.svc.SaveDraft(ctx, 7, 42, payload)
		assert.NoError(t, err)
		assert.Equal(t, "Successfully submitted the draft!!", msg)
		f.drafts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ProgramNotFound", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(99)).Return(nil, nil)

		_, err := f.svc.SaveDraft(ctx, 99, 42, map[string]any{})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestFormService_GetForm(t *testing.T) {
	ctx := context.Background()

	t.Run("SchemaAndDraftPrefill", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(7)).Return(activeProgram(7), nil)
		f.programs.On("GetFormSchema", ctx, int64(9)).Return(&domain.FormSchema{ID: 9, Schema: `{"components":[]}`}, nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(&domain.Draft{
			ID: 4, ProgramID: 7, RegistrantID: 42,
			Payload: map[string]any{"name": "Amina"},
		}, nil)

		form, err := f.svc.GetForm(ctx, 7, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), *form.FormID)
		assert.Equal(t, `{"components":[]}`, *form.Schema)
		assert.Equal(t, "Amina", form.SubmissionData["name"])
	})

	t.Run("NoFormMapped", func(t *testing.T) {
		f := newFormFixture()
		program := activeProgram(7)
		program.SelfServicePortalForm = nil
		program.IsPortalFormMapped = false

		f.programs.On("GetByID", ctx, int64(7)).Return(program, nil)
		f.drafts.On("Get", ctx, int64(7), int64(42)).Return(nil, nil)

		form, err := f.svc.GetForm(ctx, 7, 42)
		assert.NoError(t, err)
		assert.Nil(t, form.FormID)
		assert.Nil(t, form.Schema)
		f.programs.AssertNotCalled(t, "GetFormSchema", mock.Anything, mock.Anything)
	})

	t.Run("ProgramNotFound", func(t *testing.T) {
		f := newFormFixture()
		f.programs.On("GetByID", ctx, int64(99)).Return(nil, nil)

		form, err := f.svc.GetForm(ctx, 99, 42)
		assert.Nil(t, form)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}
