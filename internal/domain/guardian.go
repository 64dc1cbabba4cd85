package domain

import "time"

// Guardian is a designated third party (wali) whose approval may be required
// before a match becomes active, per the owning user's permission settings.
type Guardian struct {
	ID                        string    `json:"id" db:"id"`
	UserID                    string    `json:"user_id" db:"user_id"`
	Name                      string    `json:"name" db:"name"`
	Relationship              string    `json:"relationship" db:"relationship"`
	Email                     string    `json:"email" db:"email"`
	Phone                     *string   `json:"phone" db:"phone"`
	RequireApprovalForContact bool      `json:"require_approval_for_contact" db:"require_approval_for_contact"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
}

type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "pending"
	ApprovalApproved      ApprovalStatus = "approved"
	ApprovalRejected      ApprovalStatus = "rejected"
	ApprovalNeedsMoreInfo ApprovalStatus = "needs_more_info"
)

// GuardianApproval is an append-only record of a guardian's decision on a
// match. New records are appended, never overwritten; the latest record per
// guardian is authoritative.
type GuardianApproval struct {
	ID         string         `json:"id" db:"id"`
	GuardianID string         `json:"guardian_id" db:"guardian_id"`
	UserID     string         `json:"user_id" db:"user_id"`
	MatchID    string         `json:"match_id" db:"match_id"`
	Status     ApprovalStatus `json:"status" db:"status"`
	Comment    *string        `json:"comment" db:"comment"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
