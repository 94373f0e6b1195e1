package models

import "time"

// ResumeRecord is a parsed resume as persisted for a user. The fields are
// whatever the parsing service extracted; "Not found" placeholders from the
// parser are stored as-is.
type ResumeRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ParsedResume is the raw response of the resume-parsing service.
type ParsedResume struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
}
