package model

import "errors"

var (
	// ErrTeamExists indicates that a team with the given name already exists.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is invalid (e.g., empty).
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrTeamFull indicates that the team is already at the member limit.
	ErrTeamFull = errors.New("team is full")
	// ErrAlreadyInTeam indicates that the student already belongs to a team.
	ErrAlreadyInTeam = errors.New("student already in a team")
)
