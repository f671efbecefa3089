// Package model provides domain models and DTOs for team module.
package model

// TeamMember represents a team member in API responses.
type TeamMember struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RollNo    string `json:"roll_no"`
	IsLead    bool   `json:"is_lead"`
}

// TeamDetails represents a team with its roster in API responses.
type TeamDetails struct {
	TeamID    string       `json:"team_id"`
	TeamName  string       `json:"team_name"`
	LeadID    string       `json:"lead_id"`
	MentorID  *string      `json:"mentor_id,omitempty"`
	Members   []TeamMember `json:"members"`
	Vacancies int          `json:"vacancies"`
}

// MyTeamResponse represents the response for the my-team endpoint.
// TeamDetails is nil when the student has no team.
type MyTeamResponse struct {
	InTeam      bool         `json:"in_team"`
	TeamDetails *TeamDetails `json:"team_details,omitempty"`
}
