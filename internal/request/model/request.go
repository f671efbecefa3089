package model

import (
	"time"
)

// Request kinds. An invitation goes lead -> prospective member; a join
// request goes student -> team lead.
const (
	KindInvitation  = "invitation"
	KindJoinRequest = "join_request"
)

// Request statuses. Resolution is terminal: a request never leaves
// accepted or rejected, and there is no cancelled state.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// TeamRequest represents a pending or resolved team-formation request.
// Matches the team_requests table schema.
type TeamRequest struct {
	RequestID   string     `gorm:"primaryKey;column:request_id;type:varchar(255)"                          json:"request_id"`
	Kind        string     `gorm:"column:kind;type:varchar(32);not null;index:idx_team_requests_kind"      json:"kind"`
	TeamID      string     `gorm:"column:team_id;type:varchar(255);not null;index:idx_team_requests_team"  json:"team_id"`
	SenderID    string     `gorm:"column:sender_id;type:varchar(255);not null;index:idx_team_requests_sender" json:"sender_id"`
	RecipientID string     `gorm:"column:recipient_id;type:varchar(255);not null;index:idx_team_requests_recipient" json:"recipient_id"`
	Status      string     `gorm:"column:status;type:varchar(32);not null;default:'pending';index:idx_team_requests_status" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"               json:"-"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at;type:timestamptz"                                     json:"-"`
}

// TableName specifies the table name for GORM.
func (TeamRequest) TableName() string {
	return "team_requests"
}

// IsPending reports whether the request is still awaiting resolution.
func (r *TeamRequest) IsPending() bool {
	return r.Status == StatusPending
}
