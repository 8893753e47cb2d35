// Package repo provides Postgres bindings for the events domain.Repo
package repo

import (
	"context"
	"time"

	"tsudoi/internal/modkit/repokit"
	perr "tsudoi/internal/platform/errors"
	pstrings "tsudoi/internal/platform/strings"
	"tsudoi/internal/services/events/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// titlePrefix returns the first ten runes of a title, the fuzzy-match key
// used for near-duplicate lookups
func titlePrefix(title string) string {
	rs := []rune(title)
	if len(rs) > 10 {
		rs = rs[:10]
	}
	return string(rs)
}

func (r *queries) ExistsNear(ctx context.Context, title string, start time.Time) (bool, error) {
	var found bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM events
			WHERE is_hidden = FALSE
			  AND (title = $1 OR title LIKE '%' || $2 || '%')
			  AND start_date BETWEEN $3::date - 1 AND $3::date + 1
		)
	`, title, titlePrefix(title), start).Scan(&found)
	if err != nil {
		return false, perr.FromPostgres(err, "events near-duplicate lookup")
	}
	return found, nil
}

func (r *queries) ExistsOn(ctx context.Context, title string, start time.Time) (bool, error) {
	var found bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM events
			WHERE is_hidden = FALSE
			  AND (title = $1 OR title LIKE '%' || $2 || '%')
			  AND start_date = $3::date
		)
	`, title, titlePrefix(title), start).Scan(&found)
	if err != nil {
		return false, perr.FromPostgres(err, "events exact-date lookup")
	}
	return found, nil
}

func (r *queries) Insert(ctx context.Context, ev domain.EventCreate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO events (
			title, start_date, end_date,
			region, locality, venue, organizer, admission_fee,
			has_sales, description, external_url,
			source_region, source_url, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		ev.Title, ev.StartDate, ev.EndDate,
		pstrings.SQLNullPtr(ev.Region), pstrings.SQLNullPtr(ev.Locality),
		pstrings.SQLNull(ev.Venue), pstrings.SQLNull(ev.Organizer), pstrings.SQLNull(ev.AdmissionFee),
		ev.HasSales, ev.Description, pstrings.SQLNullPtr(ev.ExternalURL),
		ev.SourceRegion, ev.SourceURL, ev.CreatedBy,
	)
	if err != nil {
		return perr.FromPostgres(err, "events insert")
	}
	return nil
}
