package domain

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
	MatchExpired  MatchStatus = "expired"
)

// IsTerminal reports whether no further transition is legal out of s.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchRejected || s == MatchExpired
}

type SwipeAction string

const (
	SwipePass      SwipeAction = "pass"
	SwipeLike      SwipeAction = "like"
	SwipeSuperLike SwipeAction = "super_like"
)

type Swipe struct {
	ID        int         `json:"id" db:"id"`
	SwiperID  string      `json:"swiper_id" db:"swiper_id"`
	SwipedID  string      `json:"swiped_id" db:"swiped_id"`
	Action    SwipeAction `json:"action" db:"action"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Match pairs two users with the compatibility score frozen at creation time.
// Status is the only field that mutates after creation.
type Match struct {
	ID                       string             `json:"id" db:"id"`
	User1ID                  string             `json:"user1_id" db:"user1_id"`
	User2ID                  string             `json:"user2_id" db:"user2_id"`
	InitiatedBy              string             `json:"initiated_by" db:"initiated_by"`
	Score                    CompatibilityScore `json:"score"`
	Status                   MatchStatus        `json:"status" db:"status"`
	GuardianApprovalRequired bool               `json:"guardian_approval_required" db:"guardian_approval_required"`
	Approvals                []GuardianApproval `json:"approvals,omitempty"`
	CreatedAt                time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at" db:"updated_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID string) (string, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return "", false
}

// NormalizeMatchUsers orders a user pair for the (user1_id < user2_id)
// storage constraint.
func NormalizeMatchUsers(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
