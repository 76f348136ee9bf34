package dtos

// CreateCandidateRequest arrives as multipart form fields; the resume file
// travels separately.
type CreateCandidateRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	JobTitle string `form:"jobTitle"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
