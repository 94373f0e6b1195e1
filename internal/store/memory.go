package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// MemoryStore is an in-process Store used for tests and storeless dev runs.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    []models.JobRecord
	resumes []models.ResumeRecord
	matches map[string][]models.SavedMatch
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{matches: make(map[string][]models.SavedMatch)}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() {}

func (s *MemoryStore) ListJobs(ctx context.Context) ([]models.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]models.JobRecord, len(s.jobs))
	copy(jobs, s.jobs)
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func (s *MemoryStore) CreateJob(ctx context.Context, title, description string, skills []string, postedBy string) (models.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := models.JobRecord{
		ID:          utils.GenerateRequestID(),
		Title:       title,
		Description: description,
		Skills:      skills,
		PostedBy:    postedBy,
		CreatedAt:   time.Now(),
	}
	s.jobs = append(s.jobs, job)
	return job, nil
}

func (s *MemoryStore) ListResumesByUser(ctx context.Context, userID string) ([]models.ResumeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resumes []models.ResumeRecord
	for _, r := range s.resumes {
		if r.UserID == userID {
			resumes = append(resumes, r)
		}
	}
	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})
	return resumes, nil
}

func (s *MemoryStore) CreateResume(ctx context.Context, userID string, parsed models.ParsedResume) (models.ResumeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume := models.ResumeRecord{
		ID:         utils.GenerateRequestID(),
		UserID:     userID,
		Name:       parsed.Name,
		Email:      parsed.Email,
		Skills:     parsed.Skills,
		Experience: parsed.Experience,
		CreatedAt:  time.Now(),
	}
	s.resumes = append(s.resumes, resume)
	return resume, nil
}

func (s *MemoryStore) DeleteResume(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.resumes {
		if r.ID == id {
			s.resumes = append(s.resumes[:i], s.resumes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) SaveMatches(ctx context.Context, resumeID string, matches []models.SavedMatch) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[resumeID] = append(s.matches[resumeID], matches...)
	return len(matches), nil
}
