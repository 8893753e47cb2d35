package domain

import "context"

// ExtractorPort pulls candidate events from a single source page
type ExtractorPort interface {
	Extract(ctx context.Context, src Source) []CandidateEvent
}

// CacheInvalidator lets the pipeline drop any cached listing views after a
// commit. Implementations must be safe to call even when nothing was imported
type CacheInvalidator interface {
	InvalidateListings(ctx context.Context)
}

// Service is the ingestion surface the HTTP layer and the crawl binary consume
type Service interface {
	PreviewAll(ctx context.Context) ([]ImportableEvent, error)
	PreviewRegion(ctx context.Context, region string) ([]ImportableEvent, error)
	CommitSelected(ctx context.Context, operatorID string, events []ImportableEvent) (CommitResult, error)
	ListSources(ctx context.Context) []SourceInfo
}
