package domain

import "time"

// Partner is a registrant record in res_partner. Only the columns the portal
// reads are modeled; writes go through the schema-discovered allow-list in
// the partner service, not through this struct.
type Partner struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	FamilyName string     `json:"family_name"`
	GivenName  string     `json:"given_name"`
	AddlName   string     `json:"addl_name"`
	Email      string     `json:"email"`
	Gender     string     `json:"gender"`
	Address    string     `json:"address"`
	Birthdate  *time.Time `json:"birthdate"`
	BirthPlace string     `json:"birth_place"`
	Phone      string     `json:"phone"`
}

// RegistrantID is an external identity document reference (g2p_reg_id).
type RegistrantID struct {
	IDType     string     `json:"id_type"`
	Value      string     `json:"value"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// BankDetails is a res_partner_bank row joined with res_bank.
type BankDetails struct {
	BankName  string `json:"bank_name"`
	AccNumber string `json:"acc_number"`
}

// PhoneNumber is a g2p_phone_number row.
type PhoneNumber struct {
	PhoneNo       string     `json:"phone_no"`
	DateCollected *time.Time `json:"date_collected"`
}

// Profile is the assembled self-service profile view.
type Profile struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Gender       string         `json:"gender"`
	AddlName     string         `json:"addl_name"`
	GivenName    string         `json:"given_name"`
	FamilyName   string         `json:"family_name"`
	Birthdate    *time.Time     `json:"birthdate"`
	BirthPlace   string         `json:"birth_place"`
	IDs          []RegistrantID `json:"ids"`
	BankIDs      []BankDetails  `json:"bank_ids"`
	PhoneNumbers []PhoneNumber  `json:"phone_numbers"`
}
