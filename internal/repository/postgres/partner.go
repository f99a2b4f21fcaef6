package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/repository"
)

type partnerRepository struct {
	db *sql.DB
}

func NewPartnerRepository(db *sql.DB) repository.PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	p := &domain.Partner{}
	query := `SELECT id, COALESCE(name, ''), COALESCE(family_name, ''), COALESCE(given_name, ''),
	                 COALESCE(addl_name, ''), COALESCE(email, ''), COALESCE(gender, ''),
	                 COALESCE(address, ''), birthdate, COALESCE(birth_place, ''), COALESCE(phone, '')
	          FROM res_partner WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.FamilyName, &p.GivenName, &p.AddlName, &p.Email,
			&p.Gender, &p.Address, &p.Birthdate, &p.BirthPlace, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnerRepository) ListColumns(ctx context.Context) ([]string, error) {
	query := `SELECT column_name FROM information_schema.columns WHERE table_name = $1`
	rows, err := r.db.QueryContext(ctx, query, "res_partner")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// UpdateFields builds a parameterized SET clause over the given columns.
// Column names come from the information_schema allow-list upstream, never
// from raw client input.
func (r *partnerRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := ""
	args := make([]any, 0, len(fields)+2)
	for i, k := range keys {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, fields[k])
	}
	set += fmt.Sprintf(", write_date = $%d", len(keys)+1)
	args = append(args, time.Now())

	query := fmt.Sprintf("UPDATE res_partner SET %s WHERE id = $%d", set, len(keys)+2)
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *partnerRepository) GetRegistrantIDs(ctx context.Context, partnerID int64) ([]domain.RegistrantID, error) {
	query := `SELECT COALESCE(t.name, ''), COALESCE(rid.value, ''), rid.expiry_date
	          FROM g2p_reg_id rid
	          LEFT JOIN g2p_id_type t ON rid.id_type = t.id
	          WHERE rid.partner_id = $1`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.RegistrantID
	for rows.Next() {
		var rid domain.RegistrantID
		if err := rows.Scan(&rid.IDType, &rid.Value, &rid.ExpiryDate); err != nil {
			return nil, err
		}
		ids = append(ids, rid)
	}
	return ids, rows.Err()
}

func (r *partnerRepository) GetBankDetails(ctx context.Context, partnerID int64) ([]domain.BankDetails, error) {
	query := `SELECT COALESCE(b.name, ''), COALESCE(pb.acc_number, '')
	          FROM res_partner_bank pb
	          LEFT JOIN res_bank b ON pb.bank_id = b.id
	          WHERE pb.partner_id = $1`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []domain.BankDetails
	for rows.Next() {
		var bd domain.BankDetails
		if err := rows.Scan(&bd.BankName, &bd.AccNumber); err != nil {
			return nil, err
		}
		banks = append(banks, bd)
	}
	return banks, rows.Err()
}

func (r *partnerRepository) GetPhoneNumbers(ctx context.Context, partnerID int64) ([]domain.PhoneNumber, error) {
	query := `SELECT COALESCE(phone_no, ''), date_collected FROM g2p_phone_number WHERE partner_id = $1`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []domain.PhoneNumber
	for rows.Next() {
		var pn domain.PhoneNumber
		if err := rows.Scan(&pn.PhoneNo, &pn.DateCollected); err != nil {
			return nil, err
		}
		phones = append(phones, pn)
	}
	return phones, rows.Err()
}
