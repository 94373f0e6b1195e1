package store

import (
	"context"
	"errors"

	"hirepath-api/pkg/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// JobStore is the persisted (internally posted) job collection. Listing is
// always ordered by creation time, most recent first; provider jobs never
// pass through here.
type JobStore interface {
	ListJobs(ctx context.Context) ([]models.JobRecord, error)
	CreateJob(ctx context.Context, title, description string, skills []string, postedBy string) (models.JobRecord, error)
}

// ResumeStore holds parsed resumes per user, most recent first.
type ResumeStore interface {
	ListResumesByUser(ctx context.Context, userID string) ([]models.ResumeRecord, error)
	CreateResume(ctx context.Context, userID string, parsed models.ParsedResume) (models.ResumeRecord, error)
	DeleteResume(ctx context.Context, id string) error
}

// MatchStore persists scored (resume, job) pairs.
type MatchStore interface {
	SaveMatches(ctx context.Context, resumeID string, matches []models.SavedMatch) (int, error)
}

// Store bundles the three collections; both the Postgres and the in-memory
// implementations satisfy it.
type Store interface {
	JobStore
	ResumeStore
	MatchStore

	Ping(ctx context.Context) error
	Close()
}
