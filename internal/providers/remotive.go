package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// RemotiveProvider is the unauthenticated fallback feed, used only when
// Adzuna credentials are absent.
type RemotiveProvider struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewRemotiveProvider constructs the fallback provider client.
func NewRemotiveProvider(cfg *config.Config, client *http.Client) *RemotiveProvider {
	return &RemotiveProvider{
		baseURL: cfg.Providers.Remotive.BaseURL,
		client:  client,
		logger:  logging.GetGlobalLogger().WithField("component", "remotive_provider"),
	}
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	CompanyName string      `json:"company_name"`
	Location    string      `json:"candidate_required_location"`
	Salary      string      `json:"salary"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	PublishedAt string      `json:"publication_date"`
	URL         string      `json:"url"`
	JobURL      string      `json:"job_url"`
}

func (p *RemotiveProvider) Name() string { return "remotive" }

// Fetch pulls the open feed. The feed ignores query/location/page; filtering
// happens downstream. Failures degrade to an empty result.
func (p *RemotiveProvider) Fetch(ctx context.Context, params models.SearchParams) []models.JobRecord {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		p.logger.Error("Failed to build request", map[string]interface{}{"error": err.Error()})
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("External jobs fetch failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Warn("External jobs fetch failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("Remotive returned bad status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		p.logger.Warn("Remotive response malformed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	jobs := make([]models.JobRecord, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		skills := j.Tags
		if skills == nil {
			skills = []string{}
		}
		jobs = append(jobs, models.JobRecord{
			ID:          "ext_" + j.ID.String(),
			Title:       j.Title,
			Company:     utils.StringOrNil(j.CompanyName),
			Location:    utils.StringOrNil(j.Location),
			Salary:      utils.StringOrNil(j.Salary),
			Description: j.Description,
			Skills:      skills,
			PostedAt:    utils.StringOrNil(j.PublishedAt),
			URL:         jobLink(j),
		})
	}
	return jobs
}

// jobLink falls through the feed's two possible link fields before giving up.
func jobLink(j remotiveJob) *string {
	if j.URL != "" {
		return &j.URL
	}
	if j.JobURL != "" {
		return &j.JobURL
	}
	return nil
}
