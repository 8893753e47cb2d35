// Package normalize holds the pure text normalizers for extracted event blocks
package normalize

import (
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/width"
)

// Range separators seen in the wild: ASCII tilde (what width folding turns the
// full-width tilde into), wave dash, and a plain hyphen
const rangeSep = `[~〜-]`

var (
	crossMonthRe = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日\s*` + rangeSep + `\s*(\d{1,2})月(\d{1,2})日`)
	sameMonthRe  = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日\s*` + rangeSep + `\s*(\d{1,2})日`)
	singleDayRe  = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)
)

// Dates extracts a start/end date pair from a free-text detail block.
// The source text never carries a year, so each month/day is resolved to its
// nearest current-or-future occurrence relative to now; an end date before the
// start rolls over into the following year. Unparseable text yields nil, nil
func Dates(text string, now time.Time) (start, end *time.Time) {
	folded := width.Fold.String(text)

	if m := crossMonthRe.FindStringSubmatch(folded); m != nil {
		s, ok := nearest(now, atoi(m[1]), atoi(m[2]))
		if !ok {
			return nil, nil
		}
		e, ok := endAfter(s, atoi(m[3]), atoi(m[4]))
		if !ok {
			return nil, nil
		}
		return &s, &e
	}

	if m := sameMonthRe.FindStringSubmatch(folded); m != nil {
		s, ok := nearest(now, atoi(m[1]), atoi(m[2]))
		if !ok {
			return nil, nil
		}
		e, ok := endAfter(s, atoi(m[1]), atoi(m[3]))
		if !ok {
			return nil, nil
		}
		return &s, &e
	}

	if m := singleDayRe.FindStringSubmatch(folded); m != nil {
		s, ok := nearest(now, atoi(m[1]), atoi(m[2]))
		if !ok {
			return nil, nil
		}
		return &s, nil
	}

	return nil, nil
}

// nearest resolves month/day to the first occurrence on or after now's date
func nearest(now time.Time, month, day int) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	d, ok := calendarDate(now.Year(), month, day)
	if !ok {
		return time.Time{}, false
	}
	if d.Before(today) {
		d, ok = calendarDate(now.Year()+1, month, day)
		if !ok {
			return time.Time{}, false
		}
	}
	return d, true
}

// endAfter resolves an end month/day to the smallest year that keeps it on or
// after the start date, so December-to-January ranges roll over correctly
func endAfter(start time.Time, month, day int) (time.Time, bool) {
	d, ok := calendarDate(start.Year(), month, day)
	if !ok {
		return time.Time{}, false
	}
	if d.Before(start) {
		d, ok = calendarDate(start.Year()+1, month, day)
		if !ok {
			return time.Time{}, false
		}
	}
	return d, true
}

// calendarDate builds a UTC midnight date, rejecting values time.Date would
// silently normalize (13月, 2月30日 and the like)
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
