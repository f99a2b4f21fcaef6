package service

import (
	"context"
	"log/slog"
	"sort"

	"g2p-portal-backend/internal/cache"
	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository"
)

// Columns that are never written through reconciliation even when the form
// payload carries them.
var protectedPartnerColumns = map[string]struct{}{
	"id":          {},
	"create_date": {},
	"write_date":  {},
	"create_uid":  {},
	"write_uid":   {},
}

type partnerService struct {
	partners repository.PartnerRepository
	fields   *cache.PartnerFieldCache
	log      *slog.Logger
}

func NewPartnerService(partners repository.PartnerRepository, fields *cache.PartnerFieldCache) PartnerService {
	return &partnerService{
		partners: partners,
		fields:   fields,
		log:      logger.WithService("partner"),
	}
}

func (s *partnerService) Reconcile(ctx context.Context, registrantID int64, fields map[string]any) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	columns, err := s.fields.Get(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load registrant field list", err)
	}
	allowed := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		allowed[name] = struct{}{}
	}

	updates := make(map[string]any)
	for name, value := range fields {
		if _, ok := allowed[name]; !ok {
			continue
		}
		if _, ok := protectedPartnerColumns[name]; ok {
			continue
		}
		if isEmptyValue(value) {
			continue
		}
		updates[name] = value
	}
	if len(updates) == 0 {
		return nil, nil
	}

	if err := s.partners.UpdateFields(ctx, registrantID, updates); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to update registrant record", err)
	}

	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)
	s.log.Debug("reconciled registrant fields", "registrant_id", registrantID, "fields", names)
	return names, nil
}

func (s *partnerService) GetProfile(ctx context.Context, partnerID int64) (*domain.Profile, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load registrant", err)
	}
	if partner == nil {
		return nil, domain.ErrNotFound("Registrant not found.")
	}

	ids, err := s.partners.GetRegistrantIDs(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load registrant ids", err)
	}
	banks, err := s.partners.GetBankDetails(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load bank details", err)
	}
	phones, err := s.partners.GetPhoneNumbers(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load phone numbers", err)
	}

	return &domain.Profile{
		ID:           partner.ID,
		Email:        partner.Email,
		Gender:       partner.Gender,
		AddlName:     partner.AddlName,
		GivenName:    partner.GivenName,
		FamilyName:   partner.FamilyName,
		Birthdate:    partner.Birthdate,
		BirthPlace:   partner.BirthPlace,
		IDs:          ids,
		BankIDs:      banks,
		PhoneNumbers: phones,
	}, nil
}

func (s *partnerService) UpdateProfile(ctx context.Context, partnerID int64, fields map[string]any) ([]string, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to load registrant", err)
	}
	if partner == nil {
		return nil, domain.ErrNotFound("Registrant not found.")
	}
	return s.Reconcile(ctx, partnerID, fields)
}

// isEmptyValue reports whether a form value carries no usable data. Empty
// strings and nils are skipped so reconciliation never blanks out existing
// registrant data.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
