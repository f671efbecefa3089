// Package model provides domain models and DTOs for request module.
package model

// StudentRef identifies a student in request listings.
type StudentRef struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	RollNo    string `json:"roll_no"`
}

// RequestInfo represents a team request in API responses.
type RequestInfo struct {
	RequestID string     `json:"request_id"`
	Kind      string     `json:"kind"`
	TeamID    string     `json:"team_id"`
	TeamName  string     `json:"team_name"`
	Sender    StudentRef `json:"sender"`
	Recipient StudentRef `json:"recipient"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"created_at"`
}

// SendRequestRequest represents the request to create a team and invite members.
type SendRequestRequest struct {
	RecipientIDs []string `json:"recipient_ids" binding:"required"`
	TeamName     string   `json:"team_name"     binding:"required"`
}

// SendRequestResponse represents the response after creating a team with invitations.
type SendRequestResponse struct {
	TeamID   string        `json:"team_id"`
	TeamName string        `json:"team_name"`
	Requests []RequestInfo `json:"requests"`
}

// SendJoinRequestRequest represents the request to join an existing team.
type SendJoinRequestRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// ResolveRequestRequest represents an accept or reject decision on a request.
type ResolveRequestRequest struct {
	RequestID string `json:"request_id" binding:"required"`
}

// AddStudentsRequest represents the request to invite more students to an
// existing team.
type AddStudentsRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required"`
}

// RequestListResponse wraps a list of requests.
type RequestListResponse struct {
	Requests []RequestInfo `json:"requests"`
}

// DeleteStaleResponse reports how many stale requests were purged.
type DeleteStaleResponse struct {
	Deleted int64 `json:"deleted"`
}
