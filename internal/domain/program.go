package domain

import "time"

// Program is a benefit program defined in the ERP. Read-only from the
// portal's perspective; rows live in g2p_program.
type Program struct {
	ID                       int64     `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	State                    string    `json:"state"`
	Active                   bool      `json:"-"`
	IsMultipleFormSubmission bool      `json:"is_multiple_form_submission"`
	IsReimbursementProgram   bool      `json:"-"`
	SelfServicePortalForm    *int64    `json:"-"`
	SupportingDocumentsStore *int64    `json:"-"`
	CompanyID                *int64    `json:"-"`
	CreateDate               time.Time `json:"-"`

	// Per-registrant annotations filled by the service layer.
	HasApplied            *bool   `json:"has_applied,omitempty"`
	LastApplicationStatus *string `json:"last_application_status,omitempty"`
	IsPortalFormMapped    bool    `json:"is_portal_form_mapped"`
}

// PortalFormMapped reports whether a self-service form is attached. Derived,
// never stored.
func (p *Program) PortalFormMapped() bool {
	return p.SelfServicePortalForm != nil
}

// FormSchema is a formio_builder row mapped to a program.
type FormSchema struct {
	ID     int64  `json:"id"`
	Schema string `json:"schema"`
}

// ProgramForm is the assembled view served by GET /form/{programid}:
// program metadata, the mapped form schema when one exists, and the
// registrant's draft payload as prefill data.
type ProgramForm struct {
	ProgramID          int64          `json:"program_id"`
	FormID             *int64         `json:"form_id"`
	Schema             *string        `json:"schema"`
	SubmissionData     map[string]any `json:"submission_data"`
	ProgramName        string         `json:"program_name"`
	ProgramDescription string         `json:"program_description"`
}
