package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hirepath-api/pkg/models"
)

// fakeFetcher counts Search calls and records the params of each.
type fakeFetcher struct {
	mu     sync.Mutex
	jobs   []models.JobRecord
	calls  int
	params []models.SearchParams
}

func (f *fakeFetcher) Search(ctx context.Context, params models.SearchParams) ([]models.JobRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.params = append(f.params, params)
	out := make([]models.JobRecord, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) lastParams() models.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.params) == 0 {
		return models.SearchParams{}
	}
	return f.params[len(f.params)-1]
}

type fakeMatcher struct {
	matches []models.MatchResult
	err     error
	calls   int
}

func (m *fakeMatcher) MatchResume(ctx context.Context, resume models.ResumeRecord) ([]models.MatchResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

type fakeResumeLister struct {
	resumes []models.ResumeRecord
}

func (l *fakeResumeLister) ListResumesByUser(ctx context.Context, userID string) ([]models.ResumeRecord, error) {
	return l.resumes, nil
}

func strptr(s string) *string { return &s }

func newTestSession(f Fetcher, m Matcher, l ResumeLister, debounce time.Duration) *Session {
	return New(context.Background(), f, m, l, debounce)
}

// ── Refresh ────────────────────────────────────────────────────────────────

func TestRefresh_LoadsJobs(t *testing.T) {
	f := &fakeFetcher{jobs: []models.JobRecord{{ID: "adz_1", Title: "Gopher"}}}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, 10*time.Millisecond)

	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := s.VisibleJobs(); len(got) != 1 || got[0].ID != "adz_1" {
		t.Errorf("VisibleJobs = %v, want the fetched job", got)
	}
}

// ── SetQuery / debounce ────────────────────────────────────────────────────

func TestSetQuery_DebouncesRapidEdits(t *testing.T) {
	f := &fakeFetcher{}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, 30*time.Millisecond)

	for _, q := range []string{"g", "go", "gol", "gola", "golan", "golang"} {
		s.SetQuery(q)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)

	if got := f.callCount(); got != 1 {
		t.Errorf("fetcher called %d times, want 1 for a burst of edits", got)
	}
	if got := f.lastParams().Query; got != "golang" {
		t.Errorf("fetched query = %q, want the final edit", got)
	}
}

func TestSetQuery_SeparatedEditsEachFetch(t *testing.T) {
	f := &fakeFetcher{}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, 10*time.Millisecond)

	s.SetQuery("golang")
	time.Sleep(40 * time.Millisecond)
	s.SetQuery("rust")
	time.Sleep(40 * time.Millisecond)

	if got := f.callCount(); got != 2 {
		t.Errorf("fetcher called %d times, want 2 for well-separated edits", got)
	}
}

func TestFetch_StaleGenerationDiscarded(t *testing.T) {
	f := &fakeFetcher{jobs: []models.JobRecord{{ID: "stale", Title: "Old"}}}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, time.Hour)

	// A slow early fetch snapshots its generation, then a newer edit
	// supersedes it before it resolves.
	s.mu.Lock()
	s.generation++
	staleGen := s.generation
	s.mu.Unlock()

	s.SetQuery("newer")

	if err := s.fetch(staleGen, models.SearchParams{Query: "older"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	s.mu.Lock()
	held := len(s.jobs)
	s.mu.Unlock()
	if held != 0 {
		t.Error("stale fetch result should be discarded, not applied")
	}
}

// ── Modes ──────────────────────────────────────────────────────────────────

func TestShowMatched_RequiresResume(t *testing.T) {
	s := newTestSession(&fakeFetcher{}, &fakeMatcher{}, &fakeResumeLister{}, 10*time.Millisecond)

	err := s.ShowMatched("user-1")
	if !errors.Is(err, ErrNoResume) {
		t.Errorf("err = %v, want ErrNoResume", err)
	}
	if s.Mode() != ModeAll {
		t.Error("failed match should leave the session in ALL mode")
	}
}

func TestShowMatched_UsesMostRecentResume(t *testing.T) {
	m := &fakeMatcher{matches: []models.MatchResult{
		{Job: models.JobRecord{ID: "adz_1", Title: "Gopher"}, Similarity: 0.9},
	}}
	l := &fakeResumeLister{resumes: []models.ResumeRecord{
		{ID: "resume-new"}, {ID: "resume-old"},
	}}
	s := newTestSession(&fakeFetcher{}, m, l, 10*time.Millisecond)

	if err := s.ShowMatched("user-1"); err != nil {
		t.Fatalf("ShowMatched: %v", err)
	}
	if s.Mode() != ModeMatched {
		t.Error("session should be in MATCHED mode")
	}
	if got := s.VisibleMatches(); len(got) != 1 || got[0].Similarity != 0.9 {
		t.Errorf("VisibleMatches = %v", got)
	}
	if m.calls != 1 {
		t.Errorf("matcher called %d times, want 1", m.calls)
	}
}

func TestShowMatched_FailureKeepsAllMode(t *testing.T) {
	m := &fakeMatcher{err: errors.New("scoring unavailable")}
	l := &fakeResumeLister{resumes: []models.ResumeRecord{{ID: "resume-1"}}}
	s := newTestSession(&fakeFetcher{}, m, l, 10*time.Millisecond)

	if err := s.ShowMatched("user-1"); err == nil {
		t.Fatal("matcher failure should surface")
	}
	if s.Mode() != ModeAll {
		t.Error("failed match should not switch modes")
	}
}

func TestShowAll_NoRefetch(t *testing.T) {
	f := &fakeFetcher{jobs: []models.JobRecord{{ID: "adz_1", Title: "Gopher"}}}
	m := &fakeMatcher{matches: []models.MatchResult{}}
	l := &fakeResumeLister{resumes: []models.ResumeRecord{{ID: "resume-1"}}}
	s := newTestSession(f, m, l, 10*time.Millisecond)

	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := s.ShowMatched("user-1"); err != nil {
		t.Fatalf("ShowMatched: %v", err)
	}
	s.ShowAll()

	if got := f.callCount(); got != 1 {
		t.Errorf("fetcher called %d times, want 1 (mode switches never refetch)", got)
	}
	if got := s.VisibleJobs(); len(got) != 1 {
		t.Errorf("ALL-mode result lost across mode switches: %v", got)
	}
}

// ── Selection ──────────────────────────────────────────────────────────────

func TestSelection(t *testing.T) {
	s := newTestSession(&fakeFetcher{}, &fakeMatcher{}, &fakeResumeLister{}, 10*time.Millisecond)

	if s.Selected() != nil {
		t.Error("new session should have no selection")
	}
	s.Select(models.JobRecord{ID: "adz_1"})
	if sel := s.Selected(); sel == nil || sel.ID != "adz_1" {
		t.Errorf("Selected = %v", sel)
	}
	s.ClearSelection()
	if s.Selected() != nil {
		t.Error("ClearSelection should drop the selection")
	}
}

// ── Local filter ───────────────────────────────────────────────────────────

func TestVisibleJobs_FiltersAcrossFields(t *testing.T) {
	jobs := []models.JobRecord{
		{ID: "1", Title: "Golang Engineer"},
		{ID: "2", Title: "Backend", Company: strptr("GoLand Inc")},
		{ID: "3", Title: "Backend", Location: strptr("Gothenburg")},
		{ID: "4", Title: "Backend", Skills: []string{"Django"}},
		{ID: "5", Title: "Data Analyst", Skills: []string{"SQL"}},
	}
	f := &fakeFetcher{jobs: jobs}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, time.Hour)

	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	s.mu.Lock()
	s.params.Query = "go"
	s.mu.Unlock()

	visible := s.VisibleJobs()
	if len(visible) != 3 {
		t.Fatalf("got %d visible jobs, want 3 (title, company, location hits)", len(visible))
	}
	wantIDs := map[string]bool{"1": true, "2": true, "3": true}
	for _, j := range visible {
		if !wantIDs[j.ID] {
			t.Errorf("unexpected visible job %q", j.ID)
		}
	}
}

func TestVisibleJobs_FilterIsCaseInsensitive(t *testing.T) {
	f := &fakeFetcher{jobs: []models.JobRecord{
		{ID: "1", Title: "Senior GOLANG Developer"},
	}}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, time.Hour)

	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	s.mu.Lock()
	s.params.Query = "golang"
	s.mu.Unlock()

	if got := s.VisibleJobs(); len(got) != 1 {
		t.Errorf("got %d visible jobs, want case-insensitive match", len(got))
	}
}

func TestVisibleJobs_SkillSubstringMatches(t *testing.T) {
	f := &fakeFetcher{jobs: []models.JobRecord{
		{ID: "1", Title: "Backend", Skills: []string{"PostgreSQL"}},
		{ID: "2", Title: "Frontend", Skills: []string{"React"}},
	}}
	s := newTestSession(f, &fakeMatcher{}, &fakeResumeLister{}, time.Hour)

	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	s.mu.Lock()
	s.params.Query = "sql"
	s.mu.Unlock()

	got := s.VisibleJobs()
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("VisibleJobs = %v, want the PostgreSQL job via substring", got)
	}
}

func TestVisibleMatches_Filters(t *testing.T) {
	m := &fakeMatcher{matches: []models.MatchResult{
		{Job: models.JobRecord{ID: "1", Title: "Golang Engineer"}, Similarity: 0.9},
		{Job: models.JobRecord{ID: "2", Title: "Data Analyst"}, Similarity: 0.5},
	}}
	l := &fakeResumeLister{resumes: []models.ResumeRecord{{ID: "resume-1"}}}
	s := newTestSession(&fakeFetcher{}, m, l, time.Hour)

	if err := s.ShowMatched("user-1"); err != nil {
		t.Fatalf("ShowMatched: %v", err)
	}

	s.mu.Lock()
	s.params.Query = "golang"
	s.mu.Unlock()

	got := s.VisibleMatches()
	if len(got) != 1 || got[0].Job.ID != "1" {
		t.Errorf("VisibleMatches = %v, want only the golang match", got)
	}
}
