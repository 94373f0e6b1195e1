// Package aggregator merges internally posted jobs with live provider
// results into one ordered listing.
package aggregator

import (
	"context"
	"fmt"

	"hirepath-api/internal/logging"
	"hirepath-api/internal/providers"
	"hirepath-api/internal/quota"
	"hirepath-api/internal/store"
	"hirepath-api/pkg/models"
)

// JobsRoute is the logical route name the quota guard tracks for aggregated
// job fetches.
const JobsRoute = "jobs"

// Aggregator combines the persisted job store with the selected external
// provider behind the quota guard.
type Aggregator struct {
	jobs     store.JobStore
	provider providers.Provider
	guard    *quota.Guard
	logger   logging.Logger
}

// New wires an aggregator from its collaborators.
func New(jobs store.JobStore, provider providers.Provider, guard *quota.Guard) *Aggregator {
	return &Aggregator{
		jobs:     jobs,
		provider: provider,
		guard:    guard,
		logger:   logging.GetGlobalLogger().WithField("component", "aggregator"),
	}
}

// Aggregate returns external jobs followed by internal jobs, each sub-list in
// its source order. Internal jobs are never filtered by the query and always
// carry a nil URL. Provider failures and quota rejections both degrade to an
// internal-only result; only a store failure is an error.
func (a *Aggregator) Aggregate(ctx context.Context, params models.SearchParams) ([]models.JobRecord, error) {
	internal, err := a.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list internal jobs: %w", err)
	}
	for i := range internal {
		internal[i].URL = nil
	}

	var external []models.JobRecord
	if a.guard.Allow(JobsRoute) {
		external = a.provider.Fetch(ctx, params)
	} else {
		a.logger.Warn("External fetch skipped, quota window exhausted", map[string]interface{}{
			"provider": a.provider.Name(),
		})
	}

	result := make([]models.JobRecord, 0, len(external)+len(internal))
	result = append(result, external...)
	result = append(result, internal...)
	return result, nil
}
