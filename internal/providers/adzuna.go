package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// AdzunaProvider is the primary, quota-limited keyed provider.
type AdzunaProvider struct {
	appID          string
	appKey         string
	baseURL        string
	resultsPerPage int
	defaultCountry string
	client         *http.Client
	logger         logging.Logger
}

// NewAdzunaProvider constructs the primary provider client.
func NewAdzunaProvider(cfg *config.Config, client *http.Client) *AdzunaProvider {
	return &AdzunaProvider{
		appID:          cfg.Providers.Adzuna.AppID,
		appKey:         cfg.Providers.Adzuna.AppKey,
		baseURL:        cfg.Providers.Adzuna.BaseURL,
		resultsPerPage: cfg.Providers.Adzuna.ResultsPerPage,
		defaultCountry: cfg.Providers.Adzuna.Country,
		client:         client,
		logger:         logging.GetGlobalLogger().WithField("component", "adzuna_provider"),
	}
}

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	ID          json.Number    `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
	Created     string         `json:"created"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

func (p *AdzunaProvider) Name() string { return "adzuna" }

// Fetch retrieves one page of listings for the query/location pair. Any
// failure degrades to an empty result; the aggregator never sees an error.
func (p *AdzunaProvider) Fetch(ctx context.Context, params models.SearchParams) []models.JobRecord {
	country := params.Country
	if country == "" {
		country = p.defaultCountry
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/%s/search/%d", p.baseURL, country, page)

	q := url.Values{}
	q.Set("app_id", p.appID)
	q.Set("app_key", p.appKey)
	q.Set("results_per_page", strconv.Itoa(p.resultsPerPage))
	if params.Query != "" {
		q.Set("what", params.Query)
	}
	if params.Location != "" {
		q.Set("where", params.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		p.logger.Error("Failed to build request", map[string]interface{}{"error": err.Error()})
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("Adzuna fetch failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Warn("Adzuna fetch failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("Adzuna returned bad status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		p.logger.Warn("Adzuna response malformed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	jobs := make([]models.JobRecord, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		jobs = append(jobs, models.JobRecord{
			ID:          "adz_" + r.ID.String(),
			Title:       r.Title,
			Company:     utils.StringOrNil(r.Company.DisplayName),
			Location:    utils.StringOrNil(r.Location.DisplayName),
			Salary:      formatSalary(r.SalaryMin, r.SalaryMax),
			Description: r.Description,
			Skills:      []string{}, // Adzuna does not supply skill tags
			PostedAt:    utils.StringOrNil(r.Created),
			URL:         utils.StringOrNil(r.RedirectURL),
		})
	}
	return jobs
}

// formatSalary renders "$<min> - $<max>" with integer rounding, and only when
// both bounds are present.
func formatSalary(min, max float64) *string {
	if min == 0 || max == 0 {
		return nil
	}
	s := fmt.Sprintf("$%d - $%d", int(math.Round(min)), int(math.Round(max)))
	return &s
}
