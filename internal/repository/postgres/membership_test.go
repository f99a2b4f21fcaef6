package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository/postgres"
)

func TestMembershipRepository_GetByProgramAndPartner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMembershipRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT id, program_id, partner_id, COALESCE\\(state, ''\\), create_date").
			WithArgs(int64(7), int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "program_id", "partner_id", "state", "create_date"}).
				AddRow(3, 7, 42, "draft", created))

		m, err := repo.GetByProgramAndPartner(ctx, 7, 42)
		assert.NoError(t, err)
		assert.NotNil(t, m)
		assert.Equal(t, int64(3), m.ID)
		assert.Equal(t, domain.MembershipStateDraft, m.State)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, program_id, partner_id").
			WithArgs(int64(7), int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "program_id", "partner_id", "state", "create_date"}))

		m, err := repo.GetByProgramAndPartner(ctx, 7, 99)
		assert.NoError(t, err)
		assert.Nil(t, m)
	})
}

func TestMembershipRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMembershipRepository(db)
	ctx := context.Background()

	m := &domain.Membership{ProgramID: 7, PartnerID: 42, State: domain.MembershipStateDraft}

	mock.ExpectQuery("INSERT INTO g2p_program_membership").
		WithArgs(m.ProgramID, m.PartnerID, m.State, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	err = repo.Create(ctx, m)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), m.ID)
}
