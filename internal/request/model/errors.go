package model

import "errors"

var (
	// ErrRequestNotFound indicates that the requested team request does not exist.
	ErrRequestNotFound = errors.New("request not found")
	// ErrRequestAlreadyResolved indicates that the request was already accepted or rejected.
	ErrRequestAlreadyResolved = errors.New("request already resolved")
	// ErrDuplicateRequest indicates a pending request between the student and team already exists.
	ErrDuplicateRequest = errors.New("pending request for this team already exists")
	// ErrNotRequestRecipient indicates the caller is not the recipient of the request.
	ErrNotRequestRecipient = errors.New("caller is not the recipient of this request")
	// ErrNotTeamLead indicates the caller is not the lead of the team.
	ErrNotTeamLead = errors.New("caller is not the team lead")
	// ErrAlreadyInTeam indicates the acting student already belongs to a team.
	ErrAlreadyInTeam = errors.New("student already in a team")
	// ErrRecipientInTeam indicates an invited student already belongs to a team.
	ErrRecipientInTeam = errors.New("invited student already in a team")
	// ErrSelfRequest indicates a student tried to send a request to themselves.
	ErrSelfRequest = errors.New("cannot send a request to yourself")
	// ErrEmptyRecipients indicates that no recipients were provided.
	ErrEmptyRecipients = errors.New("recipients list cannot be empty")
	// ErrCapacityExceeded indicates the operation would push the team above the size limit.
	ErrCapacityExceeded = errors.New("selection exceeds team size limit")
)
