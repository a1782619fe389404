package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Rate is a named pricing plan attached to a room type. It owns a collection
// of prices whose date ranges never overlap; AddPrice enforces the invariant.
type Rate struct {
	id          uuid.UUID
	roomTypeID  uuid.UUID
	Name        string
	Description string
	Active      bool

	// prices are kept ordered by range start so the non-overlap invariant is
	// cheap to maintain and date lookups can binary-search.
	prices []*Price
}

// NewRate constructs a Rate with a generated ID and no prices.
func NewRate(roomTypeID uuid.UUID, name, description string, active bool) *Rate {
	return &Rate{
		id:          uuid.New(),
		roomTypeID:  roomTypeID,
		Name:        name,
		Description: description,
		Active:      active,
	}
}

// ReconstructRate rebuilds a Rate from storage. Prices may be passed in any
// order; they are sorted by range start.
func ReconstructRate(id, roomTypeID uuid.UUID, name, description string, active bool, prices []*Price) *Rate {
	r := &Rate{
		id:          id,
		roomTypeID:  roomTypeID,
		Name:        name,
		Description: description,
		Active:      active,
		prices:      append([]*Price(nil), prices...),
	}
	sort.Slice(r.prices, func(i, j int) bool {
		return r.prices[i].Range().Start().Before(r.prices[j].Range().Start())
	})
	return r
}

// ID returns the rate identity.
func (r *Rate) ID() uuid.UUID { return r.id }

// RoomTypeID returns the owning room type.
func (r *Rate) RoomTypeID() uuid.UUID { return r.roomTypeID }

// Prices returns the current price collection ordered by range start.
// The returned slice is a copy; mutating it does not affect the rate.
func (r *Rate) Prices() []*Price {
	return append([]*Price(nil), r.prices...)
}

// AddPrice inserts price, first removing every existing price whose range
// overlaps the new one. Eviction is whole-interval: a price overlapping the
// new range on even a single date is removed entirely, not trimmed to its
// non-overlapping remainder. Last write wins at the interval level.
func (r *Rate) AddPrice(price *Price) {
	kept := r.prices[:0]
	for _, p := range r.prices {
		if !p.Range().Overlaps(price.Range()) {
			kept = append(kept, p)
		}
	}
	// Insert keeping start order. After eviction no kept range overlaps the
	// new one, so the insertion point is the first range starting later.
	i := sort.Search(len(kept), func(i int) bool {
		return kept[i].Range().Start().After(price.Range().Start())
	})
	kept = append(kept, nil)
	copy(kept[i+1:], kept[i:])
	kept[i] = price
	r.prices = kept
}

// RemovePrice removes the price with the given ID, if present.
func (r *Rate) RemovePrice(id uuid.UUID) {
	for i, p := range r.prices {
		if p.ID() == id {
			r.prices = append(r.prices[:i], r.prices[i+1:]...)
			return
		}
	}
}

// PriceForDate returns the price whose range contains date, or nil.
// The non-overlap invariant guarantees at most one match.
func (r *Rate) PriceForDate(date time.Time) *Price {
	d := NormalizeDate(date)
	i := sort.Search(len(r.prices), func(i int) bool {
		return r.prices[i].Range().End().Compare(d) >= 0
	})
	if i < len(r.prices) && r.prices[i].Range().Contains(d) {
		return r.prices[i]
	}
	return nil
}

// PriceForRange returns the price stored for exactly the given range, or nil.
func (r *Rate) PriceForRange(dateRange DateRange) *Price {
	for _, p := range r.prices {
		if p.Range().Equal(dateRange) {
			return p
		}
	}
	return nil
}
