package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/service"
)

func newProgramFixture() (*MockProgramRepo, *MockMembershipRepo, *MockRegistrantInfoRepo, *MockSummaryRepo, service.ProgramService) {
	programs := new(MockProgramRepo)
	memberships := new(MockMembershipRepo)
	infos := new(MockRegistrantInfoRepo)
	summaries := new(MockSummaryRepo)
	svc := service.NewProgramService(programs, memberships, infos, summaries)
	return programs, memberships, infos, summaries, svc
}

func TestProgramService_ListPrograms(t *testing.T) {
	ctx := context.Background()
	programs, memberships, infos, _, svc := newProgramFixture()

	listed := []domain.Program{
		{ID: 1, Name: "Cash Transfer"},
		{ID: 2, Name: "Food Support"},
	}
	programs.On("ListActive", ctx).Return(listed, nil)

	// Registrant 42 applied to program 1 only.
	memberships.On("GetByProgramAndPartner", ctx, int64(1), int64(42)).
		Return(&domain.Membership{ID: 3, ProgramID: 1, PartnerID: 42}, nil)
	infos.On("GetLatestByMembership", ctx, int64(3)).
		Return(&domain.RegistrantInfo{ID: 5, State: domain.ApplicationStateActive}, nil)
	memberships.On("GetByProgramAndPartner", ctx, int64(2), int64(42)).Return(nil, nil)

	result, err := svc.ListPrograms(ctx, 42)
	assert.NoError(t, err)
	assert.Len(t, result, 2)

	assert.True(t, *result[0].HasApplied)
	assert.Equal(t, domain.ApplicationStateActive, *result[0].LastApplicationStatus)

	assert.False(t, *result[1].HasApplied)
	assert.Nil(t, result[1].LastApplicationStatus)
}

func TestProgramService_GetProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("AnnotatedWithNoApplications", func(t *testing.T) {
		programs, memberships, infos, _, svc := newProgramFixture()

		programs.On("GetByID", ctx, int64(1)).Return(&domain.Program{ID: 1, Name: "Cash Transfer"}, nil)
		memberships.On("GetByProgramAndPartner", ctx, int64(1), int64(42)).
			Return(&domain.Membership{ID: 3}, nil)
		infos.On("GetLatestByMembership", ctx, int64(3)).Return(nil, nil)

		p, err := svc.GetProgram(ctx, 1, 42)
		assert.NoError(t, err)
		assert.True(t, *p.HasApplied)
		assert.Nil(t, p.LastApplicationStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		programs, _, _, _, svc := newProgramFixture()
		programs.On("GetByID", ctx, int64(99)).Return(nil, nil)

		p, err := svc.GetProgram(ctx, 99, 42)
		assert.Nil(t, p)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestProgramService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankKeywordShortCircuits", func(t *testing.T) {
		programs, _, _, _, svc := newProgramFixture()

		result, err := svc.Search(ctx, "   ")
		assert.NoError(t, err)
		assert.Empty(t, result)
		programs.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
	})

	t.Run("DelegatesTrimmed", func(t *testing.T) {
		programs, _, _, _, svc := newProgramFixture()
		programs.On("SearchByName", ctx, "cash").
			Return([]domain.Program{{ID: 1, Name: "Cash Transfer"}}, nil)

		result, err := svc.Search(ctx, " cash ")
		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})
}

func TestProgramService_Summaries(t *testing.T) {
	ctx := context.Background()
	_, _, _, summaries, svc := newProgramFixture()

	summaries.On("ProgramSummary", ctx, int64(42)).Return([]domain.ProgramSummary{
		{ProgramName: "Cash Transfer", EnrollmentStatus: "enrolled", TotalFundsAwaited: 1000, TotalFundsReceived: 500},
	}, nil)

	result, err := svc.ProgramSummary(ctx, 42)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 1000.0, result[0].TotalFundsAwaited)
}
