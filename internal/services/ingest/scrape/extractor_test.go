package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tsudoi/internal/services/ingest/domain"
)

const listingPage = `<!doctype html>
<html><body>
<div class="event-item">
  <h3>青空フリーマーケット（東京都）</h3>
  <p class="event-detail">会期／6月20日（土）開催。手作り品の販売もあります。TEL：03-1234-5678</p>
  <a href="/detail/123">詳細</a>
</div>
<div class="event-item">
  <h3>   </h3>
  <p class="event-detail">タイトルのないブロック</p>
</div>
<div class="event-item">
  <h3>手づくり市</h3>
  <p class="event-detail">5月10日～15日 会場／川崎市役所前広場</p>
</div>
</body></html>`

func testSource(url string) domain.Source {
	return domain.Source{
		Region:     "関東",
		URL:        url,
		SubRegions: []string{"神奈川県", "東京都"},
	}
}

func fixedClock() time.Time {
	return time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	ex := New(WithClient(srv.Client()), WithClock(fixedClock))
	events := ex.Extract(context.Background(), testSource(srv.URL))

	if len(events) != 2 {
		t.Fatalf("expected 2 candidates (empty title discarded), got %d", len(events))
	}

	first := events[0]
	if first.Title != "青空フリーマーケット（東京都）" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.StartDate == nil || first.StartDate.Month() != time.June || first.StartDate.Day() != 20 {
		t.Fatalf("unexpected start date %v", first.StartDate)
	}
	if first.EndDate != nil {
		t.Fatalf("single-day event should have nil end date, got %v", first.EndDate)
	}
	if first.Region == nil || *first.Region != "東京都" {
		t.Fatalf("unexpected region %v", first.Region)
	}
	if !first.HasSales {
		t.Fatal("expected sales flag from 販売 keyword")
	}
	if first.ExternalURL == nil || *first.ExternalURL != srv.URL+"/detail/123" {
		t.Fatalf("unexpected external url %v", first.ExternalURL)
	}
	if first.SourceRegion != "関東" || first.SourceURL != srv.URL {
		t.Fatalf("provenance not stamped: %+v", first)
	}
	for _, frag := range []string{"03-1234-5678", "TEL"} {
		if strings.Contains(first.Description, frag) {
			t.Fatalf("description still carries %q: %q", frag, first.Description)
		}
	}

	second := events[1]
	if second.StartDate == nil || second.EndDate == nil {
		t.Fatalf("expected same-month range, got %v / %v", second.StartDate, second.EndDate)
	}
	if second.Locality == nil || *second.Locality != "川崎市" {
		t.Fatalf("unexpected locality %v", second.Locality)
	}
}

func TestExtractNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ex := New(WithClient(srv.Client()), WithClock(fixedClock))
	if events := ex.Extract(context.Background(), testSource(srv.URL)); len(events) != 0 {
		t.Fatalf("expected empty result on non-2xx, got %d", len(events))
	}
}

func TestExtractUnreachableHost(t *testing.T) {
	t.Parallel()

	ex := New(WithClock(fixedClock))
	src := testSource("http://127.0.0.1:1/nope")
	if events := ex.Extract(context.Background(), src); len(events) != 0 {
		t.Fatalf("expected empty result on transport error, got %d", len(events))
	}
}
