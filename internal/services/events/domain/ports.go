package domain

import (
	"context"
	"time"
)

// Repo is the store surface the ingestion pipeline needs.
// All lookups ignore hidden events
type Repo interface {
	// ExistsNear reports whether a non-hidden event with a fuzzily matching
	// title (exact, or containing the candidate's short prefix) starts within
	// one day of start
	ExistsNear(ctx context.Context, title string, start time.Time) (bool, error)

	// ExistsOn is the commit-time recheck: fuzzy title match with an exact
	// start date
	ExistsOn(ctx context.Context, title string, start time.Time) (bool, error)

	// Insert creates one durable event
	Insert(ctx context.Context, ev EventCreate) error
}
