package models

// MatchResult pairs a job with the similarity score the scoring service
// assigned to it. Ordering and rounding are the service's responsibility;
// the pipeline passes both through untouched.
type MatchResult struct {
	Job        JobRecord `json:"job"`
	Similarity float64   `json:"similarity"`
}

// SavedMatch is a persisted (job, score) pair for a resume.
type SavedMatch struct {
	JobID string  `json:"jobId" validate:"required"`
	Score float64 `json:"score"`
}
