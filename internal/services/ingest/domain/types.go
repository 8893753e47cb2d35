// Package domain defines the types and ports for the ingestion pipeline
package domain

import "time"

// Source is one registered third-party listing page plus its region metadata.
// The registry is constructed at startup and never mutated
type Source struct {
	// Region is the human label, unique across the registry (e.g. "関東")
	Region string `json:"region"`

	// URL is the listing page fetched for this region
	URL string `json:"url"`

	// SubRegions is the ordered, non-empty set of locality names local to the
	// region, used as an inference fallback; the first entry is the default
	SubRegions []string `json:"sub_regions"`
}

// SourceInfo is the registry row shape exposed for UI population
type SourceInfo struct {
	Region string `json:"region"`
	URL    string `json:"url"`
}

// CandidateEvent is an extracted, not-yet-reviewed event record.
// Produced per extraction run, never persisted directly
type CandidateEvent struct {
	Title        string     `json:"title"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Region       *string    `json:"region"`
	Locality     *string    `json:"locality"`
	Venue        string     `json:"venue,omitempty"`
	Organizer    string     `json:"organizer,omitempty"`
	AdmissionFee string     `json:"admission_fee,omitempty"`
	HasSales     bool       `json:"has_sales"`
	Description  string     `json:"description"`
	ExternalURL  *string    `json:"external_url"`

	// provenance of the source that produced the candidate
	SourceRegion string `json:"source_region"`
	SourceURL    string `json:"source_url"`
}

// ImportableEvent is a CandidateEvent annotated with duplicate status,
// awaiting operator selection
type ImportableEvent struct {
	CandidateEvent

	// SelectionID correlates operator selection across the preview/commit
	// round trip; ephemeral, never a durable key
	SelectionID string `json:"selection_id"`

	IsDuplicate bool `json:"is_duplicate"`
}

// CommitResult reports how many events a commit actually imported.
// Callers must treat the count as authoritative; it may be lower than the
// number of selected events
type CommitResult struct {
	Imported int `json:"imported"`
}
