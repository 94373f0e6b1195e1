package aggregator

import (
	"context"

	"hirepath-api/internal/cache"
	"hirepath-api/pkg/models"
)

// Service fronts the aggregator with the result cache. This is the search
// path everything goes through: cache hit short-circuits, a miss aggregates
// and fills the cache. The cache is what keeps repeated identical queries
// away from the quota guard.
type Service struct {
	cache *cache.ResultCache
	agg   *Aggregator
}

// NewService wires the cache in front of an aggregator.
func NewService(c *cache.ResultCache, agg *Aggregator) *Service {
	return &Service{cache: c, agg: agg}
}

// Search returns the aggregated result for params, served from cache when a
// fresh entry exists.
func (s *Service) Search(ctx context.Context, params models.SearchParams) ([]models.JobRecord, error) {
	key := s.cache.Key(params)
	if jobs, ok := s.cache.Get(key); ok {
		return jobs, nil
	}

	jobs, err := s.agg.Aggregate(ctx, params)
	if err != nil {
		return nil, err
	}

	s.cache.Put(key, jobs)
	return jobs, nil
}
