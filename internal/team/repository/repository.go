// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team by team_id.
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// GetByName finds a team by team_name.
	GetByName(ctx context.Context, teamName string) (*teamModel.Team, error)

	// GetStudent finds a student by student_id.
	GetStudent(ctx context.Context, studentID string) (*studentModel.Student, error)

	// GetMembers returns all members of a team ordered by roll number.
	GetMembers(ctx context.Context, teamID string) ([]teamModel.TeamMember, error)

	// CountMembers returns the current member count of a team.
	CountMembers(ctx context.Context, teamID string) (int64, error)

	// AddMember places a teamless student into a team.
	AddMember(ctx context.Context, teamID, studentID string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if isDuplicateError(err) {
			return teamModel.ErrTeamExists
		}
		return err
	}

	return nil
}

// isDuplicateError checks if error is a duplicate key error.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// GetByID finds a team by team_id.
func (r *repository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
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

// GetByName finds a team by team_name.
func (r *repository) GetByName(ctx context.Context, teamName string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("team_name = ?", teamName).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
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

// GetMembers returns all members of a team ordered by roll number.
func (r *repository) GetMembers(ctx context.Context, teamID string) ([]teamModel.TeamMember, error) {
	var members []teamModel.TeamMember

	err := r.db.WithContext(ctx).
		Table("students").
		Select("student_id, name, email, roll_no").
		Where("team_id = ?", teamID).
		Order("roll_no ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	if members == nil {
		return []teamModel.TeamMember{}, nil
	}

	return members, nil
}

// CountMembers returns the current member count of a team.
func (r *repository) CountMembers(ctx context.Context, teamID string) (int64, error) {
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

// AddMember places a teamless student into a team.
// The team_id IS NULL guard makes concurrent joins of the same student
// resolve to a single winner.
func (r *repository) AddMember(ctx context.Context, teamID, studentID string) error {
	result := r.db.WithContext(ctx).
		Table("students").
		Where("student_id = ? AND team_id IS NULL", studentID).
		Updates(map[string]interface{}{
			"team_id":    teamID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Either the student does not exist or they already have a team.
		_, err := r.GetStudent(ctx, studentID)
		if err != nil {
			return err
		}
		return teamModel.ErrAlreadyInTeam
	}

	return nil
}
