package model

import "errors"

var (
	// ErrStudentNotFound indicates that the requested student does not exist.
	ErrStudentNotFound = errors.New("student not found")
)
