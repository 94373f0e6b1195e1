package models

import "time"

// JobRecord is the canonical job unit flowing through the discovery pipeline.
// Internal jobs come from the persisted store; external jobs are synthesized
// fresh from a provider response on every aggregation and never persisted.
//
// IDs are namespaced by construction: internal jobs carry a bare UUID, Adzuna
// jobs an "adz_" prefix and Remotive jobs an "ext_" prefix, so collisions
// across sources cannot happen.
type JobRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Salary      *string   `json:"salary"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	PostedAt    *string   `json:"postedAt"`
	URL         *string   `json:"url"`
	PostedBy    string    `json:"postedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// SearchParams carries the caller-facing aggregation inputs. Query and
// Location may be empty; Page defaults to 1 and Country to "in" upstream.
type SearchParams struct {
	Query    string
	Location string
	Page     int
	Country  string
}
