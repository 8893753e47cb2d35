package normalize

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDates(t *testing.T) {
	t.Parallel()

	now := date(2025, time.January, 10)

	tests := []struct {
		name  string
		text  string
		start *time.Time
		end   *time.Time
	}{
		{
			name:  "full width digits",
			text:  "会期／１２月１５日",
			start: ptr(date(2025, time.December, 15)),
		},
		{
			name:  "half width digits",
			text:  "会期／12月15日",
			start: ptr(date(2025, time.December, 15)),
		},
		{
			name:  "cross month range",
			text:  "3月7日～4月8日",
			start: ptr(date(2025, time.March, 7)),
			end:   ptr(date(2025, time.April, 8)),
		},
		{
			name:  "same month range",
			text:  "5月10日～15日",
			start: ptr(date(2025, time.May, 10)),
			end:   ptr(date(2025, time.May, 15)),
		},
		{
			name:  "single day with weekday annotation",
			text:  "6月20日（土）開催",
			start: ptr(date(2025, time.June, 20)),
		},
		{
			name:  "wave dash separator",
			text:  "5月10日〜15日",
			start: ptr(date(2025, time.May, 10)),
			end:   ptr(date(2025, time.May, 15)),
		},
		{name: "no date at all", text: "毎週末に開催しています"},
		{name: "impossible day", text: "2月30日"},
		{name: "impossible month", text: "13月1日"},
		{name: "empty", text: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			start, end := Dates(tc.text, now)
			assertDate(t, "start", start, tc.start)
			assertDate(t, "end", end, tc.end)
		})
	}
}

func TestDatesYearInference(t *testing.T) {
	t.Parallel()

	// mid-year run time so past month/day pairs must land in the next year
	now := date(2025, time.June, 1)

	start, end := Dates("3月7日", now)
	assertDate(t, "start", start, ptr(date(2026, time.March, 7)))
	assertDate(t, "end", end, nil)

	// a December-to-January range straddles the year boundary
	start, end = Dates("12月28日～1月3日", now)
	assertDate(t, "start", start, ptr(date(2025, time.December, 28)))
	assertDate(t, "end", end, ptr(date(2026, time.January, 3)))

	// today itself counts as current, not past
	start, _ = Dates("6月1日", now)
	assertDate(t, "start", start, ptr(date(2025, time.June, 1)))
}

func assertDate(t *testing.T, label string, got, want *time.Time) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("%s: want nil, got %v", label, got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s: want %v, got nil", label, want)
	}
	if !got.Equal(*want) {
		t.Fatalf("%s: want %v, got %v", label, want, got)
	}
}

func ptr[T any](v T) *T { return &v }
