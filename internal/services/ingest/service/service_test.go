package service

import (
	"context"
	"testing"
	"time"

	"tsudoi/internal/modkit/repokit"
	perr "tsudoi/internal/platform/errors"
	evdomain "tsudoi/internal/services/events/domain"
	"tsudoi/internal/services/ingest/domain"
	"tsudoi/internal/services/ingest/sources"
)

// fakeQueryer satisfies the repo wiring seams without a database
type fakeQueryer struct{}

func (fakeQueryer) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (fakeQueryer) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (fakeQueryer) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }

type fakeTx struct{ fakeQueryer }

func (t fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(t.fakeQueryer)
}

type storedEvent struct {
	title string
	start time.Time
}

// fakeRepo is an in-memory stand-in for the durable event store
type fakeRepo struct {
	events  []storedEvent
	failAll bool
}

func (r *fakeRepo) ExistsNear(_ context.Context, title string, start time.Time) (bool, error) {
	if r.failAll {
		return false, perr.DBf("store unreachable")
	}
	for _, ev := range r.events {
		if ev.title == title && absHours(ev.start.Sub(start)) <= 24 {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ExistsOn(_ context.Context, title string, start time.Time) (bool, error) {
	if r.failAll {
		return false, perr.DBf("store unreachable")
	}
	for _, ev := range r.events {
		if ev.title == title && ev.start.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Insert(_ context.Context, ev evdomain.EventCreate) error {
	if r.failAll {
		return perr.DBf("store unreachable")
	}
	r.events = append(r.events, storedEvent{title: ev.Title, start: ev.StartDate})
	return nil
}

func absHours(d time.Duration) float64 {
	if d < 0 {
		d = -d
	}
	return d.Hours()
}

// fakeExtractor serves canned candidates per source region
type fakeExtractor struct {
	byRegion map[string][]domain.CandidateEvent
	calls    []string
}

func (f *fakeExtractor) Extract(_ context.Context, src domain.Source) []domain.CandidateEvent {
	f.calls = append(f.calls, src.Region)
	return f.byRegion[src.Region]
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) InvalidateListings(context.Context) { c.invalidations++ }

func testRegistry() *sources.Registry {
	return sources.New([]domain.Source{
		{Region: "東北", URL: "https://example.jp/list/tohoku/", SubRegions: []string{"宮城県"}},
		{Region: "関東", URL: "https://example.jp/list/kanto/", SubRegions: []string{"東京都"}},
		{Region: "関西", URL: "https://example.jp/list/kansai/", SubRegions: []string{"大阪府"}},
	})
}

func candidate(title string, start *time.Time) domain.CandidateEvent {
	return domain.CandidateEvent{
		Title:        title,
		StartDate:    start,
		SourceRegion: "関東",
		SourceURL:    "https://example.jp/list/kanto/",
	}
}

func newTestService(ex domain.ExtractorPort, repo *fakeRepo, opts ...Option) *Service {
	binder := repokit.BindFunc[evdomain.Repo](func(repokit.Queryer) evdomain.Repo { return repo })
	base := []Option{WithSleep(func(context.Context, time.Duration) error { return nil })}
	return New(testRegistry(), ex, binder, fakeQueryer{}, fakeTx{}, append(base, opts...)...)
}

func TestPreviewAllAggregatesAndIsolatesSources(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	ex := &fakeExtractor{byRegion: map[string][]domain.CandidateEvent{
		"東北": {candidate("朝市フリマ", &day)},
		// 関東 yields nothing, standing in for a failed fetch
		"関西": {candidate("手づくり市", &day), candidate("ガレージセール", nil)},
	}}

	svc := newTestService(ex, &fakeRepo{})
	got, err := svc.PreviewAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates across surviving sources, got %d", len(got))
	}
	if len(ex.calls) != 3 {
		t.Fatalf("expected all 3 sources visited, got %v", ex.calls)
	}

	seen := map[string]bool{}
	for _, ev := range got {
		if ev.SelectionID == "" {
			t.Fatalf("candidate %q missing selection id", ev.Title)
		}
		if seen[ev.SelectionID] {
			t.Fatalf("selection id %q reused", ev.SelectionID)
		}
		seen[ev.SelectionID] = true
	}
}

func TestPreviewAllPolitenessDelay(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	ex := &fakeExtractor{}
	svc := newTestService(ex, &fakeRepo{},
		WithDelay(250*time.Millisecond),
		WithSleep(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)

	if _, err := svc.PreviewAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 2 {
		t.Fatalf("expected a delay between each of 3 fetches, got %d", len(slept))
	}
	for _, d := range slept {
		if d != 250*time.Millisecond {
			t.Fatalf("unexpected delay %v", d)
		}
	}
}

func TestPreviewRegion(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	ex := &fakeExtractor{byRegion: map[string][]domain.CandidateEvent{
		"関東": {candidate("青空フリマ", &day)},
	}}
	svc := newTestService(ex, &fakeRepo{})

	got, err := svc.PreviewRegion(context.Background(), "関東")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "青空フリマ" {
		t.Fatalf("unexpected preview %+v", got)
	}

	if _, err := svc.PreviewRegion(context.Background(), "存在しない地域"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPreviewAnnotatesDuplicates(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	nearby := day.AddDate(0, 0, 1)

	repo := &fakeRepo{events: []storedEvent{{title: "青空フリマ", start: nearby}}}
	ex := &fakeExtractor{byRegion: map[string][]domain.CandidateEvent{
		"関東": {
			candidate("青空フリマ", &day),
			candidate("新規イベント", &day),
			candidate("日付のないイベント", nil),
		},
	}}
	svc := newTestService(ex, repo)

	got, err := svc.PreviewRegion(context.Background(), "関東")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0].IsDuplicate {
		t.Fatal("expected near-duplicate flag on matching title within a day")
	}
	if got[1].IsDuplicate {
		t.Fatal("unexpected duplicate flag on fresh event")
	}
	if got[2].IsDuplicate {
		t.Fatal("candidate without a start date must never be flagged")
	}
}

func TestCommitSelected(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := newTestService(&fakeExtractor{}, repo, WithCache(cache))

	selection := []domain.ImportableEvent{
		{CandidateEvent: candidate("青空フリマ", &day), SelectionID: "a"},
		{CandidateEvent: candidate("手づくり市", &day), SelectionID: "b"},
		{CandidateEvent: candidate("日付なし", nil), SelectionID: "c"},
	}

	res, err := svc.CommitSelected(context.Background(), "op-1", selection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("expected 2 imports (nil start skipped), got %d", res.Imported)
	}
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 durable events, got %d", len(repo.events))
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidations)
	}

	// the same selection committed again must import nothing
	res, err = svc.CommitSelected(context.Background(), "op-1", selection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 0 {
		t.Fatalf("second commit should be a no-op, imported %d", res.Imported)
	}
	if len(repo.events) != 2 {
		t.Fatalf("store grew on idempotent recommit: %d", len(repo.events))
	}
	if cache.invalidations != 1 {
		t.Fatalf("no-op commit must not invalidate, got %d", cache.invalidations)
	}
}

func TestCommitSelectedValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeExtractor{}, &fakeRepo{})
	if _, err := svc.CommitSelected(context.Background(), "", nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument for missing operator, got %v", err)
	}
}

func TestCommitSelectedStoreFailure(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeExtractor{}, &fakeRepo{failAll: true})

	_, err := svc.CommitSelected(context.Background(), "op-1", []domain.ImportableEvent{
		{CandidateEvent: candidate("青空フリマ", &day), SelectionID: "a"},
	})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected hard store failure to propagate, got %v", err)
	}
}
