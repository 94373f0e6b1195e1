// Package quota implements the fixed-window request limiter sitting in front
// of external provider calls.
package quota

import (
	"sync"
	"time"

	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
)

// window tracks admissions for one logical route.
type window struct {
	start time.Time
	count int
}

// Guard is a fixed-window counter, independent per logical route and shared
// process-wide. Window boundaries are wall-clock; a burst just before a
// boundary and another just after are both admitted. That edge behavior is
// the accepted tradeoff of the fixed-window design.
type Guard struct {
	windowLen   time.Duration
	maxRequests int
	windows     map[string]*window
	now         func() time.Time
	mu          sync.Mutex
	logger      logging.Logger
}

// NewGuard creates a guard from configuration.
func NewGuard(cfg *config.Config) *Guard {
	return newGuard(cfg.Quota.Window, cfg.Quota.MaxRequests, time.Now)
}

func newGuard(windowLen time.Duration, maxRequests int, now func() time.Time) *Guard {
	return &Guard{
		windowLen:   windowLen,
		maxRequests: maxRequests,
		windows:     make(map[string]*window),
		now:         now,
		logger:      logging.GetGlobalLogger().WithField("component", "quota_guard"),
	}
}

// Allow reports whether another request on the route fits in the current
// window, counting it if so. Rejected requests never reach the provider.
func (g *Guard) Allow(route string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	w, ok := g.windows[route]
	if !ok || now.Sub(w.start) >= g.windowLen {
		g.windows[route] = &window{start: now, count: 1}
		return true
	}

	if w.count >= g.maxRequests {
		g.logger.Warn("Quota exceeded", map[string]interface{}{
			"route":    route,
			"admitted": w.count,
		})
		return false
	}

	w.count++
	return true
}

// Remaining returns how many admissions the route has left in its current
// window; used by the status surface.
func (g *Guard) Remaining(route string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.windows[route]
	if !ok || g.now().Sub(w.start) >= g.windowLen {
		return g.maxRequests
	}
	if w.count >= g.maxRequests {
		return 0
	}
	return g.maxRequests - w.count
}
