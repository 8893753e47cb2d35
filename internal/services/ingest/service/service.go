// Package service implements the ingestion pipeline orchestration: batch
// extraction, duplicate annotation and the operator commit flow
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tsudoi/internal/modkit/repokit"
	perr "tsudoi/internal/platform/errors"
	"tsudoi/internal/platform/logger"
	evdomain "tsudoi/internal/services/events/domain"
	"tsudoi/internal/services/ingest/domain"
	"tsudoi/internal/services/ingest/sources"
)

const defaultDelay = time.Second

var _ domain.Service = (*Service)(nil)

// Service runs the pipeline end to end
type Service struct {
	reg       *sources.Registry
	extractor domain.ExtractorPort
	binder    repokit.Binder[evdomain.Repo]
	q         repokit.Queryer
	tx        repokit.TxRunner
	cache     domain.CacheInvalidator

	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// Option mutates service construction
type Option func(*Service)

// WithDelay overrides the politeness delay between source fetches
func WithDelay(d time.Duration) Option { return func(s *Service) { s.delay = d } }

// WithSleep swaps the delay implementation (tests)
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Service) { s.sleep = fn }
}

// WithCache registers a listings cache to invalidate after commits
func WithCache(c domain.CacheInvalidator) Option { return func(s *Service) { s.cache = c } }

// WithIDFunc swaps the correlation id generator (tests)
func WithIDFunc(fn func() string) Option { return func(s *Service) { s.newID = fn } }

// New builds the pipeline service
func New(
	reg *sources.Registry,
	extractor domain.ExtractorPort,
	binder repokit.Binder[evdomain.Repo],
	q repokit.Queryer,
	tx repokit.TxRunner,
	opts ...Option,
) *Service {
	s := &Service{
		reg:       reg,
		extractor: extractor,
		binder:    binder,
		q:         repokit.RequireQueryer(q),
		tx:        tx,
		delay:     defaultDelay,
		sleep:     sleepCtx,
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ListSources exposes the registry for UI population
func (s *Service) ListSources(context.Context) []domain.SourceInfo {
	all := s.reg.All()
	out := make([]domain.SourceInfo, 0, len(all))
	for _, src := range all {
		out = append(out, domain.SourceInfo{Region: src.Region, URL: src.URL})
	}
	return out
}

// PreviewAll extracts every registered source and annotates duplicates
func (s *Service) PreviewAll(ctx context.Context) ([]domain.ImportableEvent, error) {
	cands, err := s.extractAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, cands)
}

// PreviewRegion extracts one source resolved by region label or URL fragment.
// An unmatched identifier is a NotFound error, distinct from zero events
func (s *Service) PreviewRegion(ctx context.Context, region string) ([]domain.ImportableEvent, error) {
	src, err := s.reg.Lookup(region)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, s.extractor.Extract(ctx, src))
}

// extractAll walks the registry sequentially with a politeness delay between
// fetches. One source's failure never halts the rest
func (s *Service) extractAll(ctx context.Context) ([]domain.CandidateEvent, error) {
	var out []domain.CandidateEvent
	for i, src := range s.reg.All() {
		if i > 0 && s.delay > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return nil, err
			}
		}
		out = append(out, s.extractor.Extract(ctx, src)...)
	}
	return out, nil
}

// annotate assigns each candidate a transient correlation id and flags near
// duplicates against the store. Candidates without a start date are never
// flagged; they cannot be committed anyway
func (s *Service) annotate(ctx context.Context, cands []domain.CandidateEvent) ([]domain.ImportableEvent, error) {
	repo := repokit.MustBind(s.binder, s.q)

	out := make([]domain.ImportableEvent, 0, len(cands))
	for _, c := range cands {
		ev := domain.ImportableEvent{CandidateEvent: c, SelectionID: s.newID()}
		if c.StartDate != nil {
			dup, err := repo.ExistsNear(ctx, c.Title, *c.StartDate)
			if err != nil {
				return nil, err
			}
			ev.IsDuplicate = dup
		}
		out = append(out, ev)
	}
	return out, nil
}

// CommitSelected imports the operator's selection. Each candidate gets its own
// transaction with a fresh duplicate recheck, so overlapping runs stay
// idempotent; the returned count is authoritative and may be lower than the
// selection size
func (s *Service) CommitSelected(
	ctx context.Context,
	operatorID string,
	events []domain.ImportableEvent,
) (domain.CommitResult, error) {
	if operatorID == "" {
		return domain.CommitResult{}, perr.InvalidArgf("missing operator id")
	}

	imported := 0
	for _, ev := range events {
		if ev.StartDate == nil {
			continue
		}

		err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
			repo := s.binder.Bind(q)

			exists, err := repo.ExistsOn(ctx, ev.Title, *ev.StartDate)
			if err != nil {
				return err
			}
			if exists {
				return errAlreadyImported
			}
			return repo.Insert(ctx, importRecord(ev, operatorID))
		})
		switch {
		case err == nil:
			imported++
		case err == errAlreadyImported, perr.IsDuplicateKey(err):
			// lost a race with a concurrent run, reflected in the count only
		default:
			return domain.CommitResult{}, err
		}
	}

	if s.cache != nil && imported > 0 {
		s.cache.InvalidateListings(ctx)
		logger.C(ctx).Debug().Int("imported", imported).Msg("listings cache invalidated")
	}
	return domain.CommitResult{Imported: imported}, nil
}

// errAlreadyImported is an internal sentinel for the commit recheck
var errAlreadyImported = perr.Conflictf("event already imported")

// importRecord maps a selected candidate onto the durable store shape
func importRecord(ev domain.ImportableEvent, operatorID string) evdomain.EventCreate {
	return evdomain.EventCreate{
		Title:        ev.Title,
		StartDate:    *ev.StartDate,
		EndDate:      ev.EndDate,
		Region:       ev.Region,
		Locality:     ev.Locality,
		Venue:        ev.Venue,
		Organizer:    ev.Organizer,
		AdmissionFee: ev.AdmissionFee,
		HasSales:     ev.HasSales,
		Description:  ev.Description,
		ExternalURL:  ev.ExternalURL,
		SourceRegion: ev.SourceRegion,
		SourceURL:    ev.SourceURL,
		CreatedBy:    operatorID,
	}
}

// sleepCtx is a context-aware time.Sleep
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
