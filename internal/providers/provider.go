package providers

import (
	"context"
	"net/http"

	"hirepath-api/internal/config"
	"hirepath-api/pkg/models"
)

// Provider is an external job-search source. Fetch normalizes the provider's
// response into JobRecords and never fails across the aggregator boundary:
// transport errors, bad statuses and malformed bodies all log and return an
// empty slice, never partial records.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, params models.SearchParams) []models.JobRecord
}

// Select picks the provider for this process: Adzuna when credentials are
// configured, the open Remotive feed otherwise. The choice is static: a
// failing Adzuna call yields an empty result for that call, it does not fall
// back to Remotive.
func Select(cfg *config.Config) Provider {
	client := &http.Client{Timeout: cfg.Providers.Timeout}
	if cfg.AdzunaConfigured() {
		return NewAdzunaProvider(cfg, client)
	}
	return NewRemotiveProvider(cfg, client)
}
