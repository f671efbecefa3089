// Package repository provides data access layer for student module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	studentModel "github.com/mentorhub/teamformation/internal/student/model"
)

// Repository defines the interface for student data access operations.
type Repository interface {
	// GetByID finds a student by student_id.
	GetByID(ctx context.Context, studentID string) (*studentModel.Student, error)

	// SearchAvailable returns teamless students matching the search term,
	// excluding the given student.
	SearchAvailable(ctx context.Context, search, excludeID string) ([]studentModel.Student, error)

	// StudentIDsWithPendingRequests returns the set of student IDs that
	// appear on either side of a pending team request.
	StudentIDsWithPendingRequests(ctx context.Context) (map[string]struct{}, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new student repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds a student by student_id.
func (r *repository) GetByID(ctx context.Context, studentID string) (*studentModel.Student, error) {
	var student studentModel.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&student).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studentModel.ErrStudentNotFound
		}
		return nil, err
	}

	return &student, nil
}

// SearchAvailable returns teamless students matching the search term.
// Matching is case-insensitive over name, email and roll number.
func (r *repository) SearchAvailable(
	ctx context.Context,
	search, excludeID string,
) ([]studentModel.Student, error) {
	var students []studentModel.Student

	query := r.db.WithContext(ctx).
		Where("team_id IS NULL")

	if excludeID != "" {
		query = query.Where("student_id != ?", excludeID)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"lower(name) LIKE lower(?) OR lower(email) LIKE lower(?) OR lower(roll_no) LIKE lower(?)",
			pattern, pattern, pattern,
		)
	}

	err := query.Order("roll_no ASC").Find(&students).Error
	if err != nil {
		return nil, err
	}

	if students == nil {
		return []studentModel.Student{}, nil
	}

	return students, nil
}

// pendingRequestSide holds one row of sender/recipient pairs from team_requests.
type pendingRequestSide struct {
	SenderID    string
	RecipientID string
}

// StudentIDsWithPendingRequests returns the set of student IDs that appear on
// either side of a pending team request.
func (r *repository) StudentIDsWithPendingRequests(ctx context.Context) (map[string]struct{}, error) {
	var rows []pendingRequestSide

	err := r.db.WithContext(ctx).
		Table("team_requests").
		Select("sender_id, recipient_id").
		Where("status = ?", "pending").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(rows)*2)
	for _, row := range rows {
		ids[row.SenderID] = struct{}{}
		ids[row.RecipientID] = struct{}{}
	}

	return ids, nil
}
