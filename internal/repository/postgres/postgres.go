package postgres

import (
	"database/sql"

	"g2p-portal-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProgramRepository
	repository.MembershipRepository
	repository.RegistrantInfoRepository
	repository.DraftRepository
	repository.PartnerRepository
	repository.SummaryRepository
	repository.DocumentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		ProgramRepository:        NewProgramRepository(db),
		MembershipRepository:     NewMembershipRepository(db),
		RegistrantInfoRepository: NewRegistrantInfoRepository(db),
		DraftRepository:          NewDraftRepository(db),
		PartnerRepository:        NewPartnerRepository(db),
		SummaryRepository:        NewSummaryRepository(db),
		DocumentRepository:       NewDocumentRepository(db),
	}
}
