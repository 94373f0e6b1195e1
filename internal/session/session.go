// Package session implements the client-facing search controller: debounced
// query edits, the ALL/MATCHED display modes and the local text filter.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hirepath-api/internal/logging"
	"hirepath-api/pkg/models"
)

// Mode selects which result set the session displays.
type Mode int

const (
	ModeAll Mode = iota
	ModeMatched
)

// ErrNoResume is returned when matching is requested before any resume has
// been uploaded. Callers should turn it into guidance, not a system error.
var ErrNoResume = errors.New("no resume on file")

// Fetcher is the cache-fronted aggregation path.
type Fetcher interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.JobRecord, error)
}

// Matcher is the match-orchestration path.
type Matcher interface {
	MatchResume(ctx context.Context, resume models.ResumeRecord) ([]models.MatchResult, error)
}

// ResumeLister supplies the caller's stored resumes, most recent first.
type ResumeLister interface {
	ListResumesByUser(ctx context.Context, userID string) ([]models.ResumeRecord, error)
}

// Session tracks one client's search state. Query edits are debounced so a
// fetch fires once per pause in typing rather than once per keystroke, and
// each scheduled fetch carries a generation: results resolving with a stale
// generation are discarded, so a slow early response can never overwrite a
// newer one.
type Session struct {
	fetcher  Fetcher
	matcher  Matcher
	resumes  ResumeLister
	debounce time.Duration
	logger   logging.Logger

	mu          sync.Mutex
	ctx         context.Context
	params      models.SearchParams
	mode        Mode
	selectedJob *models.JobRecord
	jobs        []models.JobRecord
	matched     []models.MatchResult
	generation  uint64
	timer       *time.Timer
}

// New creates a session. ctx bounds the session's background fetches.
func New(ctx context.Context, fetcher Fetcher, matcher Matcher, resumes ResumeLister, debounce time.Duration) *Session {
	return &Session{
		fetcher:  fetcher,
		matcher:  matcher,
		resumes:  resumes,
		debounce: debounce,
		logger:   logging.GetGlobalLogger().WithField("component", "search_session"),
		ctx:      ctx,
	}
}

// Refresh fetches synchronously with the current parameters; used to load
// the initial, unfiltered listing.
func (s *Session) Refresh() error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	params := s.params
	s.mu.Unlock()

	return s.fetch(gen, params)
}

// SetQuery records a query edit and (re)starts the debounce clock. The fetch
// runs in the background once the input has been quiet for the full period.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Query = query
	s.generation++
	gen := s.generation
	params := s.params

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.fetch(gen, params); err != nil {
			s.logger.Warn("Debounced fetch failed", map[string]interface{}{
				"query": params.Query,
				"error": err.Error(),
			})
		}
	})
}

// fetch runs the search and applies the result only if no newer fetch has
// been scheduled since. In-flight fetches are not cancelled, just ignored on
// resolve when superseded.
func (s *Session) fetch(gen uint64, params models.SearchParams) error {
	jobs, err := s.fetcher.Search(s.ctx, params)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil
	}
	s.jobs = jobs
	return nil
}

// ShowMatched switches the session to MATCHED mode, running the
// orchestration exactly once: not debounced, not cached, and without
// touching the held ALL-mode result. The caller must have a resume on file.
func (s *Session) ShowMatched(userID string) error {
	resumes, err := s.resumes.ListResumesByUser(s.ctx, userID)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		return ErrNoResume
	}

	matches, err := s.matcher.MatchResume(s.ctx, resumes[0])
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.matched = matches
	s.mode = ModeMatched
	return nil
}

// ShowAll switches back to the ALL display without refetching; the last
// ALL-mode result is still in hand.
func (s *Session) ShowAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeAll
}

// Mode reports the current display mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Select opens a job's detail view.
func (s *Session) Select(job models.JobRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedJob = &job
}

// ClearSelection closes the detail view.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedJob = nil
}

// Selected returns the job in the detail view, or nil.
func (s *Session) Selected() *models.JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedJob
}

// VisibleJobs returns the ALL-mode result with the local filter applied.
// The filter narrows what is shown on top of whatever narrowing the
// upstream query already did; the two can disagree while a debounced fetch
// is still in flight.
func (s *Session) VisibleJobs() []models.JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.TrimSpace(s.params.Query)
	if query == "" {
		return append([]models.JobRecord(nil), s.jobs...)
	}

	var visible []models.JobRecord
	for _, job := range s.jobs {
		if jobMatches(job, query) {
			visible = append(visible, job)
		}
	}
	return visible
}

// VisibleMatches returns the MATCHED-mode result with the local filter
// applied to each match's job.
func (s *Session) VisibleMatches() []models.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.TrimSpace(s.params.Query)
	if query == "" {
		return append([]models.MatchResult(nil), s.matched...)
	}

	var visible []models.MatchResult
	for _, m := range s.matched {
		if jobMatches(m.Job, query) {
			visible = append(visible, m)
		}
	}
	return visible
}

// jobMatches checks the case-insensitive substring filter over title,
// company, location and skills.
func jobMatches(job models.JobRecord, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(job.Title), q) {
		return true
	}
	if job.Company != nil && strings.Contains(strings.ToLower(*job.Company), q) {
		return true
	}
	if job.Location != nil && strings.Contains(strings.ToLower(*job.Location), q) {
		return true
	}
	for _, skill := range job.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}
