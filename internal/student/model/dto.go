package model

// AvailableStudent represents a teamless student in search results.
// RequestPending marks students that already have a pending invitation
// or join request, so duplicate sends are blocked up front.
type AvailableStudent struct {
	StudentID      string `json:"student_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	RollNo         string `json:"roll_no"`
	RequestPending bool   `json:"request_pending"`
}

// AvailableStudentsResponse represents the available-students search response.
type AvailableStudentsResponse struct {
	Students []AvailableStudent `json:"students"`
}
