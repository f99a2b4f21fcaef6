package domain

import "time"

// ProgramSummary is one row of the per-registrant enrollment overview.
// Funds awaited is the approved entitlement total minus the paid total.
type ProgramSummary struct {
	ProgramName        string  `json:"program_name"`
	EnrollmentStatus   string  `json:"enrollment_status"`
	TotalFundsAwaited  float64 `json:"total_funds_awaited"`
	TotalFundsReceived float64 `json:"total_funds_received"`
}

// ApplicationDetails is one row per submitted application, newest first.
type ApplicationDetails struct {
	ProgramName       string     `json:"program_name"`
	ApplicationID     string     `json:"application_id"`
	DateApplied       *time.Time `json:"date_applied"`
	ApplicationStatus string     `json:"application_status"`
}

// BenefitDetails is one row per approved entitlement/payment pair.
type BenefitDetails struct {
	ProgramName                string     `json:"program_name"`
	DateApproved               *time.Time `json:"date_approved"`
	FundsAwaited               float64    `json:"funds_awaited"`
	FundsReceived              float64    `json:"funds_received"`
	EntitlementReferenceNumber *string    `json:"entitlement_reference_number"`
}
