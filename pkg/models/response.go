package models

import "time"

// MatchResponse is the envelope returned by the matching endpoint.
type MatchResponse struct {
	Matches []MatchResult `json:"matches"`
}

// SaveMatchesResponse reports how many match rows were written.
type SaveMatchesResponse struct {
	Success bool `json:"success"`
	Saved   int  `json:"saved"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
