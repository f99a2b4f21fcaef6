package domain

import "time"

// Application states. A registrant info row in a live state blocks any new
// submission for the same (program, registrant) pair.
const (
	ApplicationStateActive     = "active"
	ApplicationStateInProgress = "inprogress"
	ApplicationStateApplied    = "applied"
	ApplicationStateRejected   = "rejected"
	ApplicationStateEnded      = "ended"
)

// LiveApplicationStates are the states counted by the duplicate-live-application
// gate at submission time.
var LiveApplicationStates = []string{
	ApplicationStateActive,
	ApplicationStateInProgress,
	ApplicationStateApplied,
}

// IsLiveApplicationState reports whether state blocks a new submission.
func IsLiveApplicationState(state string) bool {
	for _, s := range LiveApplicationStates {
		if s == state {
			return true
		}
	}
	return false
}

// RegistrantInfo is one submitted application: a row in
// g2p_program_registrant_info. Rows are append-only; a new one is inserted
// per successful submission and never updated by the portal.
type RegistrantInfo struct {
	ID            int64          `json:"id"`
	ProgramID     int64          `json:"program_id"`
	MembershipID  int64          `json:"program_membership_id"`
	RegistrantID  int64          `json:"registrant_id"`
	Payload       map[string]any `json:"program_registrant_info"`
	State         string         `json:"state"`
	ApplicationID string         `json:"application_id"`
	CreateDate    time.Time      `json:"create_date"`
}

// Draft is the single mutable, unsubmitted payload per (program, registrant)
// pair: a row in g2p_program_registrant_info_draft. It is overwritten in
// place on save and deleted in the same transaction that records the
// submission.
type Draft struct {
	ID           int64          `json:"id"`
	ProgramID    int64          `json:"program_id"`
	RegistrantID int64          `json:"registrant_id"`
	Payload      map[string]any `json:"program_registrant_info"`
	CreateDate   time.Time      `json:"create_date"`
}

// SubmissionReceipt is returned on successful form submission.
type SubmissionReceipt struct {
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
}
