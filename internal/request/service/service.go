// Package service provides business logic layer for request module.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	requestModel "github.com/mentorhub/teamformation/internal/request/model"
	"github.com/mentorhub/teamformation/internal/request/repository"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
	teamRepository "github.com/mentorhub/teamformation/internal/team/repository"
)

// Service defines the interface for request business logic operations.
type Service interface {
	// SendRequest creates a team led by the caller and sends invitations to
	// the selected students.
	SendRequest(ctx context.Context, callerID string, req *requestModel.SendRequestRequest) (*requestModel.SendRequestResponse, error)

	// SendJoinRequest asks the lead of an existing team to admit the caller.
	SendJoinRequest(ctx context.Context, callerID, teamID string) (*requestModel.RequestInfo, error)

	// AcceptInvitation accepts an invitation addressed to the caller and
	// places them into the inviting team.
	AcceptInvitation(ctx context.Context, callerID, requestID string) (*requestModel.RequestInfo, error)

	// RejectInvitation rejects an invitation addressed to the caller.
	RejectInvitation(ctx context.Context, callerID, requestID string) (*requestModel.RequestInfo, error)

	// AcceptJoinRequest lets a team lead admit a student who asked to join.
	AcceptJoinRequest(ctx context.Context, callerID, requestID string) (*requestModel.RequestInfo, error)

	// RejectJoinRequest lets a team lead turn down a join request.
	RejectJoinRequest(ctx context.Context, callerID, requestID string) (*requestModel.RequestInfo, error)

	// AddStudents invites more students to the caller's existing team.
	AddStudents(ctx context.Context, callerID string, studentIDs []string) (*requestModel.RequestListResponse, error)

	// ListJoinRequests returns pending join requests addressed to the caller
	// as team lead.
	ListJoinRequests(ctx context.Context, callerID string) (*requestModel.RequestListResponse, error)

	// ListSentInvitations returns pending invitations the caller has sent.
	ListSentInvitations(ctx context.Context, callerID string) (*requestModel.RequestListResponse, error)

	// ListReceivedInvitations returns pending invitations addressed to the caller.
	ListReceivedInvitations(ctx context.Context, callerID string) (*requestModel.RequestListResponse, error)

	// ListAllPending returns every pending request in the system.
	ListAllPending(ctx context.Context) (*requestModel.RequestListResponse, error)

	// DeleteStale purges resolved and mooted requests.
	DeleteStale(ctx context.Context) (*requestModel.DeleteStaleResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new request service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// SendRequest creates a team led by the caller and invites the selected
// students. Validation, team creation and invitation writes run in one
// transaction so a failed recipient check never leaves a half-built team.
func (s *service) SendRequest(
	ctx context.Context,
	callerID string,
	req *requestModel.SendRequestRequest,
) (*requestModel.SendRequestResponse, error) {
	if req.TeamName == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	recipientIDs := dedupe(req.RecipientIDs)
	if len(recipientIDs) == 0 {
		return nil, requestModel.ErrEmptyRecipients
	}

	for _, id := range recipientIDs {
		if id == callerID {
			return nil, requestModel.ErrSelfRequest
		}
	}

	// The caller occupies one seat, so the selection itself must fit
	// into the remaining ones.
	if 1+len(recipientIDs) > teamModel.TeamSizeLimit {
		return nil, requestModel.ErrCapacityExceeded
	}

	var result *requestModel.SendRequestResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txTeamRepo := teamRepository.New(tx)

		sender, err := txRepo.GetStudent(ctx, callerID)
		if err != nil {
			return err
		}
		if sender.InTeam() {
			return requestModel.ErrAlreadyInTeam
		}

		team := &teamModel.Team{
			TeamID:   uuid.NewString(),
			TeamName: req.TeamName,
			LeadID:   callerID,
		}
		if err := txTeamRepo.Create(ctx, team); err != nil {
			return err
		}

		if err := txTeamRepo.AddMember(ctx, team.TeamID, callerID); err != nil {
			return err
		}

		requests := make([]requestModel.TeamRequest, 0, len(recipientIDs))
		for _, recipientID := range recipientIDs {
			recipient, err := txRepo.GetStudent(ctx, recipientID)
			if err != nil {
				return err
			}
			if recipient.InTeam() {
				return requestModel.ErrRecipientInTeam
			}

			request := &requestModel.TeamRequest{
				RequestID:   uuid.NewString(),
				Kind:        requestModel.KindInvitation,
				TeamID:      team.TeamID,
				SenderID:    callerID,
				RecipientID: recipientID,
				Status:      requestModel.StatusPending,
			}
			if err := txRepo.Create(ctx, request); err != nil {
				return err
			}
			requests = append(requests, *request)
		}

		infos, err := s.buildRequestInfos(ctx, txRepo, requests)
		if err != nil {
			return err
		}

		result = &requestModel.SendRequestResponse{
			TeamID:   team.TeamID,
			TeamName: team.TeamName,
			Requests: infos,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created with invitations",
		"team_id", result.TeamID,
		"lead_id", callerID,
		"invitations", len(result.Requests),
	)

	return result, nil
}

// SendJoinRequest asks the lead of an existing team to admit the caller.
func (s *service) SendJoinRequest(
	ctx context.Context,
	callerID, teamID string,
) (*requestModel.RequestInfo, error) {
	var result *requestModel.RequestInfo

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		sender, err := txRepo.GetStudent(ctx, callerID)
		if err != nil {
			return err
		}
		if sender.InTeam() {
			return requestModel.ErrAlreadyInTeam
		}

		team, err := txRepo.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}

		count, err := txRepo.CountTeamMembers(ctx, teamID)
		if err != nil {
			return err
		}
		if count >= teamModel.TeamSizeLimit {
			return teamModel.ErrTeamFull
		}

		exists, err := txRepo.HasPendingBetween(ctx, teamID, callerID)
		if err != nil {
			return err
		}
		if exists {
			return requestModel.ErrDuplicateRequest
		}

		request := &requestModel.TeamRequest{
			RequestID:   uuid.NewString(),
			Kind:        requestModel.KindJoinRequest,
			TeamID:      teamID,
			SenderID:    callerID,
			RecipientID: team.LeadID,
			Status:      requestModel.StatusPending,
		}
		if err := txRepo.Create(ctx, request); err != nil {
			return err
		}

		infos, err := s.buildRequestInfos(ctx, txRepo, []requestModel.TeamRequest{*request})
		if err != nil {
			return err
		}
		result = &infos[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("join request sent",
		"request_id", result.RequestID,
		"team_id", teamID,
		"sender_id", callerID,
	)

	return result, nil
}

// AcceptInvitation accepts an invitation addressed to the caller. Joining
// re-checks membership and capacity inside the transaction, then rejects
// the caller's remaining pending requests.
func (s *service) AcceptInvitation(
	ctx context.Context,
	callerID, requestID string,
) (*requestModel.RequestInfo, error) {
	return s.resolve(ctx, callerID, requestID, requestModel.KindInvitation, true)
}

// RejectInvitation rejects an invitation addressed to the caller.
func (s *service) RejectInvitation(
	ctx context.Context,
	callerID, requestID string,
) (*requestModel.RequestInfo, error) {
	return s.resolve(ctx, callerID, requestID, requestModel.KindInvitation, false)
}

// AcceptJoinRequest lets a team lead admit a student who asked to join.
func (s *service) AcceptJoinRequest(
	ctx context.Context,
	callerID, requestID string,
) (*requestModel.RequestInfo, error) {
	return s.resolve(ctx, callerID, requestID, requestModel.KindJoinRequest, true)
}

// RejectJoinRequest lets a team lead turn down a join request.
func (s *service) RejectJoinRequest(
	ctx context.Context,
	callerID, requestID string,
) (*requestModel.RequestInfo, error) {
	return s.resolve(ctx, callerID, requestID, requestModel.KindJoinRequest, false)
}

// resolve applies an accept or reject decision to a pending request. The
// joining student is the recipient for invitations and the sender for join
// requests; on accept they are placed into the team and their other
// pending requests are rejected.
func (s *service) resolve(
	ctx context.Context,
	callerID, requestID, kind string,
	accept bool,
) (*requestModel.RequestInfo, error) {
	var result *requestModel.RequestInfo

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)
		txTeamRepo := teamRepository.New(tx)

		request, err := txRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if request.Kind != kind {
			return requestModel.ErrRequestNotFound
		}

		if request.RecipientID != callerID {
			if kind == requestModel.KindJoinRequest {
				return requestModel.ErrNotTeamLead
			}
			return requestModel.ErrNotRequestRecipient
		}

		if !request.IsPending() {
			return requestModel.ErrRequestAlreadyResolved
		}

		status := requestModel.StatusRejected
		if accept {
			status = requestModel.StatusAccepted

			joinerID := request.RecipientID
			if kind == requestModel.KindJoinRequest {
				joinerID = request.SenderID
			}

			joiner, err := txRepo.GetStudent(ctx, joinerID)
			if err != nil {
				return err
			}
			if joiner.InTeam() {
				return requestModel.ErrAlreadyInTeam
			}

			count, err := txRepo.CountTeamMembers(ctx, request.TeamID)
			if err != nil {
				return err
			}
			if count >= teamModel.TeamSizeLimit {
				return teamModel.ErrTeamFull
			}

			if err := txTeamRepo.AddMember(ctx, request.TeamID, joinerID); err != nil {
				return err
			}

			if err := txRepo.Resolve(ctx, requestID, status); err != nil {
				return err
			}

			rejected, err := txRepo.RejectSiblingPending(ctx, joinerID, requestID)
			if err != nil {
				return err
			}
			if rejected > 0 {
				s.logger.Infow("rejected sibling pending requests",
					"student_id", joinerID,
					"count", rejected,
				)
			}
		} else {
			if err := txRepo.Resolve(ctx, requestID, status); err != nil {
				return err
			}
		}

		request.Status = status
		infos, err := s.buildRequestInfos(ctx, txRepo, []requestModel.TeamRequest{*request})
		if err != nil {
			return err
		}
		result = &infos[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("request resolved",
		"request_id", requestID,
		"kind", kind,
		"status", result.Status,
		"resolved_by", callerID,
	)

	return result, nil
}

// AddStudents invites more students to the caller's existing team. Only the
// team lead may invite, and the selection must fit into the seats left
// after counting members and outstanding invitations.
func (s *service) AddStudents(
	ctx context.Context,
	callerID string,
	studentIDs []string,
) (*requestModel.RequestListResponse, error) {
	ids := dedupe(studentIDs)
	if len(ids) == 0 {
		return nil, requestModel.ErrEmptyRecipients
	}

	for _, id := range ids {
		if id == callerID {
			return nil, requestModel.ErrSelfRequest
		}
	}

	var result *requestModel.RequestListResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		caller, err := txRepo.GetStudent(ctx, callerID)
		if err != nil {
			return err
		}
		if !caller.InTeam() {
			return teamModel.ErrTeamNotFound
		}

		team, err := txRepo.GetTeam(ctx, *caller.TeamID)
		if err != nil {
			return err
		}
		if team.LeadID != callerID {
			return requestModel.ErrNotTeamLead
		}

		members, err := txRepo.CountTeamMembers(ctx, team.TeamID)
		if err != nil {
			return err
		}

		invitations, err := txRepo.CountPendingInvitations(ctx, team.TeamID)
		if err != nil {
			return err
		}

		if members+invitations+int64(len(ids)) > teamModel.TeamSizeLimit {
			return requestModel.ErrCapacityExceeded
		}

		requests := make([]requestModel.TeamRequest, 0, len(ids))
		for _, studentID := range ids {
			recipient, err := txRepo.GetStudent(ctx, studentID)
			if err != nil {
				return err
			}
			if recipient.InTeam() {
				return requestModel.ErrRecipientInTeam
			}

			exists, err := txRepo.HasPendingBetween(ctx, team.TeamID, studentID)
			if err != nil {
				return err
			}
			if exists {
				return requestModel.ErrDuplicateRequest
			}

			request := &requestModel.TeamRequest{
				RequestID:   uuid.NewString(),
				Kind:        requestModel.KindInvitation,
				TeamID:      team.TeamID,
				SenderID:    callerID,
				RecipientID: studentID,
				Status:      requestModel.StatusPending,
			}
			if err := txRepo.Create(ctx, request); err != nil {
				return err
			}
			requests = append(requests, *request)
		}

		infos, err := s.buildRequestInfos(ctx, txRepo, requests)
		if err != nil {
			return err
		}
		result = &requestModel.RequestListResponse{Requests: infos}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("students invited to team",
		"lead_id", callerID,
		"invitations", len(result.Requests),
	)

	return result, nil
}

// ListJoinRequests returns pending join requests addressed to the caller.
func (s *service) ListJoinRequests(
	ctx context.Context,
	callerID string,
) (*requestModel.RequestListResponse, error) {
	requests, err := s.repo.ListPendingByRecipient(ctx, requestModel.KindJoinRequest, callerID)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, requests)
}

// ListSentInvitations returns pending invitations the caller has sent.
func (s *service) ListSentInvitations(
	ctx context.Context,
	callerID string,
) (*requestModel.RequestListResponse, error) {
	requests, err := s.repo.ListPendingBySender(ctx, requestModel.KindInvitation, callerID)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, requests)
}

// ListReceivedInvitations returns pending invitations addressed to the caller.
func (s *service) ListReceivedInvitations(
	ctx context.Context,
	callerID string,
) (*requestModel.RequestListResponse, error) {
	requests, err := s.repo.ListPendingByRecipient(ctx, requestModel.KindInvitation, callerID)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, requests)
}

// ListAllPending returns every pending request in the system.
func (s *service) ListAllPending(ctx context.Context) (*requestModel.RequestListResponse, error) {
	requests, err := s.repo.ListAllPending(ctx)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, requests)
}

// DeleteStale purges resolved and mooted requests.
func (s *service) DeleteStale(ctx context.Context) (*requestModel.DeleteStaleResponse, error) {
	deleted, err := s.repo.DeleteStale(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("stale requests purged", "deleted", deleted)

	return &requestModel.DeleteStaleResponse{Deleted: deleted}, nil
}

func (s *service) toListResponse(
	ctx context.Context,
	requests []requestModel.TeamRequest,
) (*requestModel.RequestListResponse, error) {
	infos, err := s.buildRequestInfos(ctx, s.repo, requests)
	if err != nil {
		return nil, err
	}

	return &requestModel.RequestListResponse{Requests: infos}, nil
}

// buildRequestInfos resolves student and team references for a batch of
// requests with two lookups instead of one per row.
func (s *service) buildRequestInfos(
	ctx context.Context,
	repo repository.Repository,
	requests []requestModel.TeamRequest,
) ([]requestModel.RequestInfo, error) {
	if len(requests) == 0 {
		return []requestModel.RequestInfo{}, nil
	}

	studentIDSet := make(map[string]struct{})
	teamIDSet := make(map[string]struct{})
	for _, r := range requests {
		studentIDSet[r.SenderID] = struct{}{}
		studentIDSet[r.RecipientID] = struct{}{}
		teamIDSet[r.TeamID] = struct{}{}
	}

	studentIDs := make([]string, 0, len(studentIDSet))
	for id := range studentIDSet {
		studentIDs = append(studentIDs, id)
	}
	teamIDs := make([]string, 0, len(teamIDSet))
	for id := range teamIDSet {
		teamIDs = append(teamIDs, id)
	}

	students, err := repo.GetStudentsByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	teams, err := repo.GetTeamsByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	studentRefs := make(map[string]requestModel.StudentRef, len(students))
	for _, st := range students {
		studentRefs[st.StudentID] = requestModel.StudentRef{
			StudentID: st.StudentID,
			Name:      st.Name,
			RollNo:    st.RollNo,
		}
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.TeamID] = t.TeamName
	}

	infos := make([]requestModel.RequestInfo, 0, len(requests))
	for _, r := range requests {
		infos = append(infos, requestModel.RequestInfo{
			RequestID: r.RequestID,
			Kind:      r.Kind,
			TeamID:    r.TeamID,
			TeamName:  teamNames[r.TeamID],
			Sender:    studentRefs[r.SenderID],
			Recipient: studentRefs[r.RecipientID],
			Status:    r.Status,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	return infos, nil
}

// dedupe removes duplicate IDs preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
