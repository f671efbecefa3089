//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"net/http"

	requestModel "github.com/mentorhub/teamformation/internal/request/model"
	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
)

func (s *E2ETestSuite) TestHealthEndpoint() {
	resp, _ := s.doRequest("GET", "/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) TestUnauthenticatedRequestRejected() {
	resp, body := s.doRequest("GET", "/teamformation/my-team", "", nil)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	code, _ := s.parseErrorResponse(body)
	s.Equal("UNAUTHORIZED", code)
}

func (s *E2ETestSuite) TestFullInvitationLifecycle() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob", "21CS002")
	s.seedStudent("s3", "Carol", "21CS003")

	// Lead forms a team and invites two students.
	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{
			TeamName:     "Rocket",
			RecipientIDs: []string{"s2", "s3"},
		})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var created requestModel.SendRequestResponse
	s.Require().NoError(json.Unmarshal(body, &created))
	s.Len(created.Requests, 2)

	// s2 accepts their invitation.
	resp, body = s.doRequest("GET", "/teamformation/received-requests", "s2", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var inbox requestModel.RequestListResponse
	s.Require().NoError(json.Unmarshal(body, &inbox))
	s.Require().Len(inbox.Requests, 1)

	resp, body = s.doRequest("POST", "/teamformation/accept-request", "s2",
		requestModel.ResolveRequestRequest{RequestID: inbox.Requests[0].RequestID})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	// The team snapshot shows both members and two vacancies.
	resp, body = s.doRequest("GET", "/teamformation/my-team", "s2", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var myTeam teamModel.MyTeamResponse
	s.Require().NoError(json.Unmarshal(body, &myTeam))
	s.Require().True(myTeam.InTeam)
	s.Equal("Rocket", myTeam.TeamDetails.TeamName)
	s.Len(myTeam.TeamDetails.Members, 2)
	s.Equal(teamModel.TeamSizeLimit-2, myTeam.TeamDetails.Vacancies)

	// Accepting again is a conflict.
	resp, body = s.doRequest("POST", "/teamformation/accept-request", "s2",
		requestModel.ResolveRequestRequest{RequestID: inbox.Requests[0].RequestID})
	s.Equal(http.StatusConflict, resp.StatusCode)
	code, _ := s.parseErrorResponse(body)
	s.Equal("REQUEST_RESOLVED", code)
}

func (s *E2ETestSuite) TestJoinRequestLifecycle() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob", "21CS002")
	s.seedStudent("s3", "Carol", "21CS003")

	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{
			TeamName:     "Rocket",
			RecipientIDs: []string{"s2"},
		})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var created requestModel.SendRequestResponse
	s.Require().NoError(json.Unmarshal(body, &created))

	// s3 asks to join; the lead accepts.
	resp, body = s.doRequest("POST", "/teamformation/send-join-request", "s3",
		requestModel.SendJoinRequestRequest{TeamID: created.TeamID})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var joinInfo requestModel.RequestInfo
	s.Require().NoError(json.Unmarshal(body, &joinInfo))
	s.Equal("lead", joinInfo.Recipient.StudentID)

	resp, body = s.doRequest("POST", "/teamformation/accept-join-request", "lead",
		requestModel.ResolveRequestRequest{RequestID: joinInfo.RequestID})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.doRequest("GET", "/teamformation/my-team", "s3", nil)
	var myTeam teamModel.MyTeamResponse
	s.Require().NoError(json.Unmarshal(body, &myTeam))
	s.True(myTeam.InTeam)
	s.Equal(created.TeamID, myTeam.TeamDetails.TeamID)
}

func (s *E2ETestSuite) TestOnlyLeadMayDecideJoinRequests() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob", "21CS002")
	s.seedStudent("s3", "Carol", "21CS003")

	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{
			TeamName:     "Rocket",
			RecipientIDs: []string{"s2"},
		})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created requestModel.SendRequestResponse
	s.Require().NoError(json.Unmarshal(body, &created))

	_, body = s.doRequest("POST", "/teamformation/send-join-request", "s3",
		requestModel.SendJoinRequestRequest{TeamID: created.TeamID})
	var joinInfo requestModel.RequestInfo
	s.Require().NoError(json.Unmarshal(body, &joinInfo))

	resp, body = s.doRequest("POST", "/teamformation/accept-join-request", "s2",
		requestModel.ResolveRequestRequest{RequestID: joinInfo.RequestID})
	s.Equal(http.StatusForbidden, resp.StatusCode)
	code, _ := s.parseErrorResponse(body)
	s.Equal("FORBIDDEN", code)
}

func (s *E2ETestSuite) TestCapacityIsEnforcedEndToEnd() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob", "21CS002")
	s.seedStudent("s3", "Carol", "21CS003")
	s.seedStudent("s4", "Dave", "21CS004")
	s.seedStudent("s5", "Eve", "21CS005")

	// Four recipients plus the sender exceed the limit.
	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{
			TeamName:     "Rocket",
			RecipientIDs: []string{"s2", "s3", "s4", "s5"},
		})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	code, _ := s.parseErrorResponse(body)
	s.Equal("CAPACITY_EXCEEDED", code)

	// Fill the team to the limit.
	resp, body = s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{
			TeamName:     "Rocket",
			RecipientIDs: []string{"s2", "s3", "s4"},
		})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var created requestModel.SendRequestResponse
	s.Require().NoError(json.Unmarshal(body, &created))

	for _, id := range []string{"s2", "s3", "s4"} {
		_, body = s.doRequest("GET", "/teamformation/received-requests", id, nil)
		var inbox requestModel.RequestListResponse
		s.Require().NoError(json.Unmarshal(body, &inbox))
		s.Require().Len(inbox.Requests, 1)

		resp, body = s.doRequest("POST", "/teamformation/accept-request", id,
			requestModel.ResolveRequestRequest{RequestID: inbox.Requests[0].RequestID})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	}

	// The full team turns away join requests.
	resp, body = s.doRequest("POST", "/teamformation/send-join-request", "s5",
		requestModel.SendJoinRequestRequest{TeamID: created.TeamID})
	s.Equal(http.StatusConflict, resp.StatusCode)
	code, _ = s.parseErrorResponse(body)
	s.Equal("TEAM_FULL", code)
}

func (s *E2ETestSuite) TestAcceptingOneInvitationRejectsTheOthers() {
	s.seedStudent("lead1", "Alice", "21CS001")
	s.seedStudent("lead2", "Bob", "21CS002")
	s.seedStudent("s3", "Carol", "21CS003")

	// Two teams court the same student.
	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead1",
		requestModel.SendRequestRequest{TeamName: "Rocket", RecipientIDs: []string{"s3"}})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp, body = s.doRequest("POST", "/teamformation/send-request", "lead2",
		requestModel.SendRequestRequest{TeamName: "Comet", RecipientIDs: []string{"s3"}})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	_, body = s.doRequest("GET", "/teamformation/received-requests", "s3", nil)
	var inbox requestModel.RequestListResponse
	s.Require().NoError(json.Unmarshal(body, &inbox))
	s.Require().Len(inbox.Requests, 2)

	resp, body = s.doRequest("POST", "/teamformation/accept-request", "s3",
		requestModel.ResolveRequestRequest{RequestID: inbox.Requests[0].RequestID})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	// The competing invitation is gone from the inbox.
	_, body = s.doRequest("GET", "/teamformation/received-requests", "s3", nil)
	s.Require().NoError(json.Unmarshal(body, &inbox))
	s.Empty(inbox.Requests)
}

func (s *E2ETestSuite) TestAvailableStudentsSearch() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob Martin", "21CS002")
	s.seedStudent("s3", "Carol", "21EC003")

	resp, body := s.doRequest("GET", "/teamformation/available-students?search=21cs", "lead", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var available studentModel.AvailableStudentsResponse
	s.Require().NoError(json.Unmarshal(body, &available))
	s.Require().Len(available.Students, 1)
	s.Equal("s2", available.Students[0].StudentID)
}

func (s *E2ETestSuite) TestStaleRequestPurge() {
	s.seedStudent("lead", "Alice", "21CS001")
	s.seedStudent("s2", "Bob", "21CS002")

	resp, body := s.doRequest("POST", "/teamformation/send-request", "lead",
		requestModel.SendRequestRequest{TeamName: "Rocket", RecipientIDs: []string{"s2"}})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	_, body = s.doRequest("GET", "/teamformation/received-requests", "s2", nil)
	var inbox requestModel.RequestListResponse
	s.Require().NoError(json.Unmarshal(body, &inbox))
	s.Require().Len(inbox.Requests, 1)

	resp, _ = s.doRequest("POST", "/teamformation/reject-request", "s2",
		requestModel.ResolveRequestRequest{RequestID: inbox.Requests[0].RequestID})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, body = s.doRequest("DELETE", "/teamformation/delete-requests", "lead", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var purged requestModel.DeleteStaleResponse
	s.Require().NoError(json.Unmarshal(body, &purged))
	s.Equal(int64(1), purged.Deleted)
}
