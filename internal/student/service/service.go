// Package service provides business logic layer for student module.
package service

import (
	"context"

	"go.uber.org/zap"

	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	"github.com/mentorhub/teamformation/internal/student/repository"
)

// Service defines the interface for student business logic operations.
type Service interface {
	// AvailableStudents returns teamless students matching the search term,
	// excluding the caller, with pending-request markers for deduplication.
	AvailableStudents(
		ctx context.Context,
		callerID, search string,
	) (*studentModel.AvailableStudentsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new student service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// AvailableStudents returns teamless students matching the search term.
func (s *service) AvailableStudents(
	ctx context.Context,
	callerID, search string,
) (*studentModel.AvailableStudentsResponse, error) {
	students, err := s.repo.SearchAvailable(ctx, search, callerID)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.StudentIDsWithPendingRequests(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]studentModel.AvailableStudent, 0, len(students))
	for _, student := range students {
		_, hasPending := pending[student.StudentID]
		results = append(results, studentModel.AvailableStudent{
			StudentID:      student.StudentID,
			Name:           student.Name,
			Email:          student.Email,
			RollNo:         student.RollNo,
			RequestPending: hasPending,
		})
	}

	return &studentModel.AvailableStudentsResponse{Students: results}, nil
}
