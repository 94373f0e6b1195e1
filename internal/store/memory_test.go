package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"hirepath-api/pkg/models"
)

// ── Jobs ───────────────────────────────────────────────────────────────────

func TestMemoryStore_ListJobsNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.CreateJob(ctx, "First", "", nil, "user-1"); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := s.CreateJob(ctx, "Second", "", nil, "user-1"); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	jobs, err := s.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Title != "Second" || jobs[1].Title != "First" {
		t.Errorf("order = [%s, %s], want newest first", jobs[0].Title, jobs[1].Title)
	}
}

func TestMemoryStore_CreateJobAssignsIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore()

	job, err := s.CreateJob(context.Background(), "Backend Engineer", "Build APIs", []string{"Go"}, "user-1")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.ID == "" {
		t.Error("created job should get an ID")
	}
	if job.CreatedAt.IsZero() {
		t.Error("created job should get a timestamp")
	}
	if job.PostedBy != "user-1" {
		t.Errorf("PostedBy = %q", job.PostedBy)
	}
}

// ── Resumes ────────────────────────────────────────────────────────────────

func TestMemoryStore_ResumesScopedToUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.CreateResume(ctx, "user-1", models.ParsedResume{Name: "Mine"}); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	if _, err := s.CreateResume(ctx, "user-2", models.ParsedResume{Name: "Theirs"}); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}

	resumes, err := s.ListResumesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListResumesByUser: %v", err)
	}
	if len(resumes) != 1 || resumes[0].Name != "Mine" {
		t.Errorf("resumes = %v, want only user-1's", resumes)
	}
}

func TestMemoryStore_ListResumesNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.CreateResume(ctx, "user-1", models.ParsedResume{Name: "Old"}); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := s.CreateResume(ctx, "user-1", models.ParsedResume{Name: "New"}); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}

	resumes, err := s.ListResumesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListResumesByUser: %v", err)
	}
	if len(resumes) != 2 || resumes[0].Name != "New" {
		t.Errorf("resumes = %v, want newest first", resumes)
	}
}

func TestMemoryStore_DeleteResume(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	r, err := s.CreateResume(ctx, "user-1", models.ParsedResume{Name: "Mine"})
	if err != nil {
		t.Fatalf("CreateResume: %v", err)
	}

	if err := s.DeleteResume(ctx, r.ID); err != nil {
		t.Fatalf("DeleteResume: %v", err)
	}
	resumes, _ := s.ListResumesByUser(ctx, "user-1")
	if len(resumes) != 0 {
		t.Errorf("resume still listed after delete: %v", resumes)
	}

	if err := s.DeleteResume(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

// ── Matches ────────────────────────────────────────────────────────────────

func TestMemoryStore_SaveMatches(t *testing.T) {
	s := NewMemoryStore()

	n, err := s.SaveMatches(context.Background(), "resume-1", []models.SavedMatch{
		{JobID: "adz_1", Score: 0.9},
		{JobID: "10", Score: 0.4},
	})
	if err != nil {
		t.Fatalf("SaveMatches: %v", err)
	}
	if n != 2 {
		t.Errorf("saved %d matches, want 2", n)
	}
}
