// Package service provides business logic layer for team module.
package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/mentorhub/teamformation/internal/team/model"
	"github.com/mentorhub/teamformation/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// MyTeam returns the caller's team snapshot, or in_team=false when the
	// caller has no team.
	MyTeam(ctx context.Context, studentID string) (*teamModel.MyTeamResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// MyTeam returns the caller's team snapshot. The snapshot is assembled
// inside a single transaction so readers never observe a half-applied
// membership change.
func (s *service) MyTeam(ctx context.Context, studentID string) (*teamModel.MyTeamResponse, error) {
	var result *teamModel.MyTeamResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		student, err := txRepo.GetStudent(ctx, studentID)
		if err != nil {
			return err
		}

		if !student.InTeam() {
			result = &teamModel.MyTeamResponse{InTeam: false}
			return nil
		}

		team, err := txRepo.GetByID(ctx, *student.TeamID)
		if err != nil {
			return err
		}

		members, err := txRepo.GetMembers(ctx, team.TeamID)
		if err != nil {
			return err
		}

		for i := range members {
			members[i].IsLead = members[i].StudentID == team.LeadID
		}

		vacancies := teamModel.TeamSizeLimit - len(members)
		if vacancies < 0 {
			vacancies = 0
		}

		result = &teamModel.MyTeamResponse{
			InTeam: true,
			TeamDetails: &teamModel.TeamDetails{
				TeamID:    team.TeamID,
				TeamName:  team.TeamName,
				LeadID:    team.LeadID,
				MentorID:  team.MentorID,
				Members:   members,
				Vacancies: vacancies,
			},
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
