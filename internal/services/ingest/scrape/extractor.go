// Package scrape fetches third-party listing pages and turns their repeated
// event blocks into structured candidates
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tsudoi/internal/platform/logger"
	"tsudoi/internal/services/ingest/domain"
	"tsudoi/internal/services/ingest/normalize"
)

const (
	defaultUserAgent = "tsudoi-ingest/1.0"
	fetchTimeout     = 20 * time.Second
)

// Block is one raw event block lifted from the page markup
type Block struct {
	Title  string
	Detail string
	Href   string
}

// BlockParser splits a listing page body into raw blocks. One implementation
// per page layout variant
type BlockParser interface {
	Blocks(r io.Reader) ([]Block, error)
}

// ListingParser handles the single listing layout the registered sources
// share: repeated item containers with a title element, a detail paragraph
// and an optional detail link
type ListingParser struct {
	BlockSel  string
	TitleSel  string
	DetailSel string
	LinkSel   string
}

// NewListingParser returns a parser with the production selectors
func NewListingParser() *ListingParser {
	return &ListingParser{
		BlockSel:  "div.event-item, li.event-item, article.event",
		TitleSel:  "h3, .event-title",
		DetailSel: "p.event-detail, .event-body, p",
		LinkSel:   "a",
	}
}

// Blocks parses the page body into raw blocks. Blocks missing any element
// come back partially filled; the caller decides what to discard
func (p *ListingParser) Blocks(r io.Reader) ([]Block, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []Block
	doc.Find(p.BlockSel).Each(func(_ int, sel *goquery.Selection) {
		b := Block{
			Title:  strings.TrimSpace(sel.Find(p.TitleSel).First().Text()),
			Detail: strings.TrimSpace(sel.Find(p.DetailSel).First().Text()),
		}
		if href, ok := sel.Find(p.LinkSel).First().Attr("href"); ok {
			b.Href = strings.TrimSpace(href)
		}
		out = append(out, b)
	})
	return out, nil
}

// Extractor fetches one source page and normalizes its blocks into candidate
// events. Fetch and parse failures degrade to an empty result, never an error
type Extractor struct {
	client *http.Client
	parser BlockParser
	now    func() time.Time
	ua     string
}

// Option mutates extractor construction
type Option func(*Extractor)

// WithClient swaps the HTTP client (tests, custom transports)
func WithClient(c *http.Client) Option { return func(e *Extractor) { e.client = c } }

// WithParser swaps the block parser
func WithParser(p BlockParser) Option { return func(e *Extractor) { e.parser = p } }

// WithClock injects the time source used for year inference
func WithClock(now func() time.Time) Option { return func(e *Extractor) { e.now = now } }

// New builds an Extractor with production defaults
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
		parser: NewListingParser(),
		now:    time.Now,
		ua:     defaultUserAgent,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// result is the tagged per-source outcome, kept internal for logging; the
// public boundary flattens failures to zero events
type result struct {
	events []domain.CandidateEvent
	err    error
}

// Extract fetches src and returns its candidate events. A failing source
// yields an empty slice; the failure is logged, not propagated
func (e *Extractor) Extract(ctx context.Context, src domain.Source) []domain.CandidateEvent {
	res := e.extract(ctx, src)
	if res.err != nil {
		logger.C(ctx).Warn().
			Err(res.err).
			Str("region", src.Region).
			Str("url", src.URL).
			Msg("source extraction failed, continuing without it")
		return nil
	}
	return res.events
}

func (e *Extractor) extract(ctx context.Context, src domain.Source) result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return result{err: err}
	}
	req.Header.Set("User-Agent", e.ua)

	resp, err := e.client.Do(req)
	if err != nil {
		return result{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result{err: &statusError{code: resp.StatusCode, url: src.URL}}
	}

	blocks, err := e.parser.Blocks(resp.Body)
	if err != nil {
		return result{err: err}
	}

	events := make([]domain.CandidateEvent, 0, len(blocks))
	for _, b := range blocks {
		if b.Title == "" {
			continue
		}
		events = append(events, e.candidate(src, b))
	}
	return result{events: events}
}

// candidate runs the normalizers over one raw block and stamps provenance
func (e *Extractor) candidate(src domain.Source, b Block) domain.CandidateEvent {
	start, end := normalize.Dates(b.Detail, e.now())
	region := normalize.Region(b.Title, b.Detail, src.SubRegions)
	city := normalize.City(b.Title, b.Detail)

	ev := domain.CandidateEvent{
		Title:        b.Title,
		StartDate:    start,
		EndDate:      end,
		Region:       &region,
		Locality:     city,
		HasSales:     strings.Contains(b.Detail, "販売"),
		Description:  normalize.Scrub(b.Detail),
		SourceRegion: src.Region,
		SourceURL:    src.URL,
	}
	if link := resolveHref(src.URL, b.Href); link != "" {
		ev.ExternalURL = &link
	}
	return ev
}

// resolveHref absolutizes a block's link against the listing page URL
func resolveHref(base, href string) string {
	if href == "" {
		return ""
	}
	bu, err := url.Parse(base)
	if err != nil {
		return ""
	}
	hu, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return bu.ResolveReference(hu).String()
}

type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.code, e.url)
}
