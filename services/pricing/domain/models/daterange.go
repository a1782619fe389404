package models

import (
	"fmt"
	"iter"
	"time"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

// day is one calendar day.
const day = 24 * time.Hour

// NormalizeDate truncates t to UTC midnight. All DateRange endpoints and all
// per-date lookups in this package go through this so that dates compare by
// calendar day regardless of clock or zone.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive closed interval of calendar dates.
// Immutable value type.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange returns the inclusive range [start, end].
// Fails with ErrInvalidRange when either endpoint is zero or start > end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: start and end dates are required", pricingdomain.ErrInvalidRange)
	}
	s, e := NormalizeDate(start), NormalizeDate(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s",
			pricingdomain.ErrInvalidRange, s.Format(time.DateOnly), e.Format(time.DateOnly))
	}
	return DateRange{start: s, end: e}, nil
}

// DateRangeFrom returns the range covering numberOfDays days starting at start.
func DateRangeFrom(start time.Time, numberOfDays int) (DateRange, error) {
	if numberOfDays < 1 {
		return DateRange{}, fmt.Errorf("%w: number of days must be positive", pricingdomain.ErrInvalidRange)
	}
	s := NormalizeDate(start)
	return NewDateRange(s, s.AddDate(0, 0, numberOfDays-1))
}

// SingleDay returns the one-day range containing date.
func SingleDay(date time.Time) (DateRange, error) {
	return NewDateRange(date, date)
}

// Start returns the first covered date.
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the last covered date.
func (r DateRange) End() time.Time {
	return r.end
}

// Days returns the number of covered dates, endpoints inclusive.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start)/day) + 1
}

// Contains reports whether date falls within the range, endpoints inclusive.
func (r DateRange) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(r.start) && !d.After(r.end)
}

// Overlaps reports whether the two ranges share at least one date.
// Symmetric; ranges touching on a single boundary date count as overlapping.
func (r DateRange) Overlaps(other DateRange) bool {
	return !(other.end.Before(r.start) || other.start.After(r.end))
}

// Intersection returns the range of dates shared by both ranges.
// Fails with ErrDisjointRanges when Overlaps is false.
func (r DateRange) Intersection(other DateRange) (DateRange, error) {
	if !r.Overlaps(other) {
		return DateRange{}, fmt.Errorf("%w: %s and %s", pricingdomain.ErrDisjointRanges, r, other)
	}
	start := r.start
	if other.start.After(start) {
		start = other.start
	}
	end := r.end
	if other.end.Before(end) {
		end = other.end
	}
	return DateRange{start: start, end: end}, nil
}

// All yields every covered date in ascending order. The sequence is finite
// and restartable; each range can be iterated any number of times.
func (r DateRange) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Dates returns every covered date as a slice in ascending order.
func (r DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Days())
	for d := range r.All() {
		dates = append(dates, d)
	}
	return dates
}

// Equal reports whether both ranges cover exactly the same dates.
func (r DateRange) Equal(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// IsZero reports whether the range is the uninitialized zero value.
func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// String formats the range as "2024-07-01 to 2024-07-03", or a single date
// for one-day ranges.
func (r DateRange) String() string {
	if r.start.Equal(r.end) {
		return r.start.Format(time.DateOnly)
	}
	return r.start.Format(time.DateOnly) + " to " + r.end.Format(time.DateOnly)
}
