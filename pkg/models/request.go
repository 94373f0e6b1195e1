package models

// CreateJobRequest is the payload for posting an internal job.
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Skills      []string `json:"skills"`
}

// SaveMatchesRequest persists scored matches for a resume.
type SaveMatchesRequest struct {
	ResumeID string       `json:"resumeId" validate:"required"`
	Matches  []SavedMatch `json:"matches" validate:"required,dive"`
}
