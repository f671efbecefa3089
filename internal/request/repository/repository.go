// Package repository provides data access layer for request module.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	requestModel "github.com/mentorhub/teamformation/internal/request/model"
	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
)

// Repository defines the interface for request data access operations.
type Repository interface {
	// Create creates a new team request.
	Create(ctx context.Context, request *requestModel.TeamRequest) error

	// GetByID finds a request by request_id.
	GetByID(ctx context.Context, requestID string) (*requestModel.TeamRequest, error)

	// Resolve marks a pending request accepted or rejected. Resolution is
	// terminal: resolving a non-pending request fails.
	Resolve(ctx context.Context, requestID, status string) error

	// RejectSiblingPending rejects the student's other pending requests
	// (join requests they sent, invitations addressed to them) once the
	// student has joined a team.
	RejectSiblingPending(ctx context.Context, studentID, exceptRequestID string) (int64, error)

	// ListPendingByRecipient returns pending requests of a kind addressed to a student.
	ListPendingByRecipient(ctx context.Context, kind, recipientID string) ([]requestModel.TeamRequest, error)

	// ListPendingBySender returns pending requests of a kind sent by a student.
	ListPendingBySender(ctx context.Context, kind, senderID string) ([]requestModel.TeamRequest, error)

	// ListAllPending returns every pending request.
	ListAllPending(ctx context.Context) ([]requestModel.TeamRequest, error)

	// HasPendingBetween reports whether a pending request already links the
	// student and the team, in either direction.
	HasPendingBetween(ctx context.Context, teamID, studentID string) (bool, error)

	// CountPendingInvitations returns the number of outstanding invitations
	// for a team.
	CountPendingInvitations(ctx context.Context, teamID string) (int64, error)

	// DeleteStale purges resolved requests and pending requests made moot by
	// membership changes or full teams.
	DeleteStale(ctx context.Context) (int64, error)

	// GetStudent finds a student by student_id.
	GetStudent(ctx context.Context, studentID string) (*studentModel.Student, error)

	// GetStudentsByIDs returns students for the given set of IDs.
	GetStudentsByIDs(ctx context.Context, studentIDs []string) ([]studentModel.Student, error)

	// GetTeam finds a team by team_id.
	GetTeam(ctx context.Context, teamID string) (*teamModel.Team, error)

	// GetTeamsByIDs returns teams for the given set of IDs.
	GetTeamsByIDs(ctx context.Context, teamIDs []string) ([]teamModel.Team, error)

	// CountTeamMembers returns the current member count of a team.
	CountTeamMembers(ctx context.Context, teamID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new request repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create creates a new team request.
func (r *repository) Create(ctx context.Context, request *requestModel.TeamRequest) error {
	if request.Status == "" {
		request.Status = requestModel.StatusPending
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID finds a request by request_id.
func (r *repository) GetByID(ctx context.Context, requestID string) (*requestModel.TeamRequest, error) {
	var request requestModel.TeamRequest
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&request).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requestModel.ErrRequestNotFound
		}
		return nil, err
	}

	return &request, nil
}

// Resolve marks a pending request accepted or rejected.
// The status = pending guard makes concurrent resolutions of the same
// request settle to a single winner.
func (r *repository) Resolve(ctx context.Context, requestID, status string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&requestModel.TeamRequest{}).
		Where("request_id = ? AND status = ?", requestID, requestModel.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": now,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, requestID); err != nil {
			return err
		}
		return requestModel.ErrRequestAlreadyResolved
	}

	return nil
}

// RejectSiblingPending rejects the student's other pending requests.
func (r *repository) RejectSiblingPending(
	ctx context.Context,
	studentID, exceptRequestID string,
) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&requestModel.TeamRequest{}).
		Where("status = ? AND request_id != ?", requestModel.StatusPending, exceptRequestID).
		Where(
			"(kind = ? AND sender_id = ?) OR (kind = ? AND recipient_id = ?)",
			requestModel.KindJoinRequest, studentID,
			requestModel.KindInvitation, studentID,
		).
		Updates(map[string]interface{}{
			"status":      requestModel.StatusRejected,
			"resolved_at": now,
		})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// ListPendingByRecipient returns pending requests of a kind addressed to a student.
func (r *repository) ListPendingByRecipient(
	ctx context.Context,
	kind, recipientID string,
) ([]requestModel.TeamRequest, error) {
	var requests []requestModel.TeamRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND kind = ? AND recipient_id = ?",
			requestModel.StatusPending, kind, recipientID).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	if requests == nil {
		return []requestModel.TeamRequest{}, nil
	}

	return requests, nil
}

// ListPendingBySender returns pending requests of a kind sent by a student.
func (r *repository) ListPendingBySender(
	ctx context.Context,
	kind, senderID string,
) ([]requestModel.TeamRequest, error) {
	var requests []requestModel.TeamRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND kind = ? AND sender_id = ?",
			requestModel.StatusPending, kind, senderID).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	if requests == nil {
		return []requestModel.TeamRequest{}, nil
	}

	return requests, nil
}

// ListAllPending returns every pending request.
func (r *repository) ListAllPending(ctx context.Context) ([]requestModel.TeamRequest, error) {
	var requests []requestModel.TeamRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", requestModel.StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	if requests == nil {
		return []requestModel.TeamRequest{}, nil
	}

	return requests, nil
}

// HasPendingBetween reports whether a pending request already links the
// student and the team, in either direction.
func (r *repository) HasPendingBetween(ctx context.Context, teamID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&requestModel.TeamRequest{}).
		Where("status = ? AND team_id = ?", requestModel.StatusPending, teamID).
		Where("sender_id = ? OR recipient_id = ?", studentID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CountPendingInvitations returns the number of outstanding invitations for a team.
func (r *repository) CountPendingInvitations(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&requestModel.TeamRequest{}).
		Where("status = ? AND kind = ? AND team_id = ?",
			requestModel.StatusPending, requestModel.KindInvitation, teamID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteStale purges resolved requests, pending requests whose subject
// student has since joined a team, and pending requests targeting teams
// that are already full.
func (r *repository) DeleteStale(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM team_requests
		WHERE status != ?
		   OR (kind = ? AND recipient_id IN (SELECT student_id FROM students WHERE team_id IS NOT NULL))
		   OR (kind = ? AND sender_id IN (SELECT student_id FROM students WHERE team_id IS NOT NULL))
		   OR team_id IN (
				SELECT team_id FROM students
				WHERE team_id IS NOT NULL
				GROUP BY team_id
				HAVING COUNT(*) >= ?
		   )`,
		requestModel.StatusPending,
		requestModel.KindInvitation,
		requestModel.KindJoinRequest,
		teamModel.TeamSizeLimit,
	)

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// GetStudent finds a student by student_id.
func (r *repository) GetStudent(ctx context.Context, studentID string) (*studentModel.Student, error) {
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

// GetStudentsByIDs returns students for the given set of IDs.
func (r *repository) GetStudentsByIDs(
	ctx context.Context,
	studentIDs []string,
) ([]studentModel.Student, error) {
	if len(studentIDs) == 0 {
		return []studentModel.Student{}, nil
	}

	var students []studentModel.Student
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	if students == nil {
		return []studentModel.Student{}, nil
	}

	return students, nil
}

// GetTeam finds a team by team_id.
func (r *repository) GetTeam(ctx context.Context, teamID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// GetTeamsByIDs returns teams for the given set of IDs.
func (r *repository) GetTeamsByIDs(ctx context.Context, teamIDs []string) ([]teamModel.Team, error) {
	if len(teamIDs) == 0 {
		return []teamModel.Team{}, nil
	}

	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}

	if teams == nil {
		return []teamModel.Team{}, nil
	}

	return teams, nil
}

// CountTeamMembers returns the current member count of a team.
func (r *repository) CountTeamMembers(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("students").
		Where("team_id = ?", teamID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
