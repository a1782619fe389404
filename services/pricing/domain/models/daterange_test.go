package models

import (
	"errors"
	"testing"
	"time"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	r, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("rejects zero endpoints", func(t *testing.T) {
		if _, err := NewDateRange(time.Time{}, date(2024, 7, 1)); !errors.Is(err, pricingdomain.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
		if _, err := NewDateRange(date(2024, 7, 1), time.Time{}); !errors.Is(err, pricingdomain.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		_, err := NewDateRange(date(2024, 7, 10), date(2024, 7, 1))
		if !errors.Is(err, pricingdomain.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("normalizes endpoints to UTC midnight", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		start := time.Date(2024, 7, 1, 18, 30, 0, 0, loc)
		r := mustRange(t, start, start)
		if !r.Start().Equal(date(2024, 7, 1)) {
			t.Fatalf("expected normalized start 2024-07-01, got %v", r.Start())
		}
	})

	t.Run("single day range has one day", func(t *testing.T) {
		r, err := SingleDay(date(2024, 7, 1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Days() != 1 {
			t.Fatalf("expected 1 day, got %d", r.Days())
		}
	})

	t.Run("DateRangeFrom covers exactly n days", func(t *testing.T) {
		r, err := DateRangeFrom(date(2024, 7, 1), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.End().Equal(date(2024, 7, 7)) {
			t.Fatalf("expected end 2024-07-07, got %v", r.End())
		}
		if _, err := DateRangeFrom(date(2024, 7, 1), 0); !errors.Is(err, pricingdomain.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange for zero days, got %v", err)
		}
	})
}

func TestDateRangeContains(t *testing.T) {
	r := mustRange(t, date(2024, 7, 1), date(2024, 7, 10))

	t.Run("endpoints are inclusive", func(t *testing.T) {
		if !r.Contains(date(2024, 7, 1)) || !r.Contains(date(2024, 7, 10)) {
			t.Fatal("expected both endpoints contained")
		}
	})

	t.Run("dates outside are excluded", func(t *testing.T) {
		if r.Contains(date(2024, 6, 30)) || r.Contains(date(2024, 7, 11)) {
			t.Fatal("expected adjacent dates excluded")
		}
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		if !r.Contains(time.Date(2024, 7, 10, 23, 59, 0, 0, time.UTC)) {
			t.Fatal("expected late-evening timestamp on the last day to be contained")
		}
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base := mustRange(t, date(2024, 7, 10), date(2024, 7, 20))

	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", mustRange(t, date(2024, 7, 10), date(2024, 7, 20)), true},
		{"partial tail", mustRange(t, date(2024, 7, 15), date(2024, 7, 25)), true},
		{"contained", mustRange(t, date(2024, 7, 12), date(2024, 7, 14)), true},
		{"containing", mustRange(t, date(2024, 7, 1), date(2024, 7, 31)), true},
		{"touching end boundary", mustRange(t, date(2024, 7, 20), date(2024, 7, 25)), true},
		{"touching start boundary", mustRange(t, date(2024, 7, 1), date(2024, 7, 10)), true},
		{"before", mustRange(t, date(2024, 7, 1), date(2024, 7, 9)), false},
		{"after", mustRange(t, date(2024, 7, 21), date(2024, 7, 31)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps(%s) = %v, want %v", tc.other, got, tc.want)
			}
			// Overlaps is symmetric.
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("reverse Overlaps(%s) = %v, want %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestDateRangeIntersection(t *testing.T) {
	t.Run("returns the shared dates", func(t *testing.T) {
		a := mustRange(t, date(2024, 7, 1), date(2024, 7, 15))
		b := mustRange(t, date(2024, 7, 10), date(2024, 7, 31))
		got, err := a.Intersection(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := mustRange(t, date(2024, 7, 10), date(2024, 7, 15))
		if !got.Equal(want) {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})

	t.Run("fails for disjoint ranges", func(t *testing.T) {
		a := mustRange(t, date(2024, 7, 1), date(2024, 7, 5))
		b := mustRange(t, date(2024, 7, 6), date(2024, 7, 10))
		if _, err := a.Intersection(b); !errors.Is(err, pricingdomain.ErrDisjointRanges) {
			t.Fatalf("expected ErrDisjointRanges, got %v", err)
		}
	})
}

func TestDateRangeIteration(t *testing.T) {
	r := mustRange(t, date(2024, 7, 1), date(2024, 7, 3))

	t.Run("All yields each date in order", func(t *testing.T) {
		var got []time.Time
		for d := range r.All() {
			got = append(got, d)
		}
		want := []time.Time{date(2024, 7, 1), date(2024, 7, 2), date(2024, 7, 3)}
		if len(got) != len(want) {
			t.Fatalf("expected %d dates, got %d", len(want), len(got))
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Fatalf("date %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("All supports early break", func(t *testing.T) {
		n := 0
		for range r.All() {
			n++
			break
		}
		if n != 1 {
			t.Fatalf("expected 1 iteration, got %d", n)
		}
	})

	t.Run("Dates matches Days", func(t *testing.T) {
		if len(r.Dates()) != r.Days() {
			t.Fatalf("Dates() length %d != Days() %d", len(r.Dates()), r.Days())
		}
	})
}

func TestDateRangeString(t *testing.T) {
	multi := mustRange(t, date(2024, 7, 1), date(2024, 7, 3))
	if got := multi.String(); got != "2024-07-01 to 2024-07-03" {
		t.Fatalf("unexpected format: %q", got)
	}
	single := mustRange(t, date(2024, 7, 1), date(2024, 7, 1))
	if got := single.String(); got != "2024-07-01" {
		t.Fatalf("unexpected single-day format: %q", got)
	}
}
