package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/service"
)

func TestMembershipService_EnsureMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("ReusesExisting", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		svc := service.NewMembershipService(repo)

		repo.On("GetByProgramAndPartner", ctx, int64(7), int64(42)).
			Return(&domain.Membership{ID: 3, ProgramID: 7, PartnerID: 42, State: domain.MembershipStateEnrolled}, nil)

		id, err := svc.EnsureMembership(ctx, 7, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), id)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CreatesWhenAbsent", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		svc := service.NewMembershipService(repo)

		repo.On("GetByProgramAndPartner", ctx, int64(7), int64(42)).Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Membership) bool {
			return m.ProgramID == 7 && m.PartnerID == 42 && m.State == domain.MembershipStateDraft
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Membership).ID = 11
		}).Return(nil)

		id, err := svc.EnsureMembership(ctx, 7, 42)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), id)
		repo.AssertExpectations(t)
	})

	t.Run("IdempotentAcrossCalls", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		svc := service.NewMembershipService(repo)

		repo.On("GetByProgramAndPartner", ctx, int64(7), int64(42)).Return(nil, nil).Once()
		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Membership).ID = 11
		}).Return(nil).Once()
		repo.On("GetByProgramAndPartner", ctx, int64(7), int64(42)).
			Return(&domain.Membership{ID: 11, ProgramID: 7, PartnerID: 42, State: domain.MembershipStateDraft}, nil)

		first, err := svc.EnsureMembership(ctx, 7, 42)
		assert.NoError(t, err)
		second, err := svc.EnsureMembership(ctx, 7, 42)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		repo.AssertNumberOfCalls(t, "Create", 1)
	})
}
