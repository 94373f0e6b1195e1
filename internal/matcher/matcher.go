// Package matcher submits resume artifacts to the external similarity-scoring
// service and returns its ranked matches.
package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// Orchestrator packages resume fields as a file-like artifact and submits
// them to the scoring service. Unlike provider fetches, scoring failures are
// surfaced: an empty match list would be indistinguishable from "no jobs
// matched" and mislead the caller.
type Orchestrator struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// New creates an orchestrator from configuration.
func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		baseURL: cfg.Matcher.BaseURL,
		client:  &http.Client{Timeout: cfg.Matcher.Timeout},
		logger:  logging.GetGlobalLogger().WithField("component", "matcher"),
	}
}

type matchResponse struct {
	Matches []models.MatchResult `json:"matches"`
	Error   string               `json:"error"`
}

// Artifact renders the resume fields as the text blob the scoring service
// expects to receive as its file payload.
func Artifact(resume models.ResumeRecord) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nSkills: %s\nExperience: %s",
		resume.Name, resume.Email, strings.Join(resume.Skills, ", "), resume.Experience)
}

// MatchResume scores the resume against the current job pool. The returned
/// list is exactly what the service produced: its order and its scores,
// without re-ranking or rounding.
func (o *Orchestrator) MatchResume(ctx context.Context, resume models.ResumeRecord) ([]models.MatchResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", "resume.pdf")
	if err != nil {
		return nil, fmt.Errorf("build artifact: %w", err)
	}
	if _, err := io.WriteString(part, Artifact(resume)); err != nil {
		return nil, fmt.Errorf("build artifact: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build artifact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/match-resume", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Error("Scoring service unreachable", map[string]interface{}{"error": err.Error()})
		return nil, utils.NewMatchingError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		o.logger.Error("Scoring service returned bad status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, utils.NewMatchingError(fmt.Sprintf("scoring service returned status %d", resp.StatusCode))
	}

	var result matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, utils.NewMatchingError(fmt.Sprintf("malformed scoring response: %v", err))
	}

	// The service reports its own failures in-band with a 200.
	if result.Error != "" {
		return nil, utils.NewMatchingError(result.Error)
	}

	if result.Matches == nil {
		result.Matches = []models.MatchResult{}
	}
	return result.Matches, nil
}
