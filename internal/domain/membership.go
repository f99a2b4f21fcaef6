package domain

import "time"

// Membership states mirror the ERP's g2p_program_membership lifecycle. The
// portal only ever writes MembershipStateDraft; the rest are set by program
// staff in the ERP.
const (
	MembershipStateDraft    = "draft"
	MembershipStateEnrolled = "enrolled"
	MembershipStateActive   = "active"
	MembershipStateEnded    = "ended"
)

// Membership links one registrant to one program. At most one row exists per
// (program_id, partner_id) pair; it is created lazily on first submission.
type Membership struct {
	ID         int64     `json:"id"`
	ProgramID  int64     `json:"program_id"`
	PartnerID  int64     `json:"partner_id"`
	State      string    `json:"state"`
	CreateDate time.Time `json:"create_date"`
}
