package models

import (
	"time"

	"github.com/google/uuid"
)

// Price is a base amount plus calculation strategy valid over one date range.
// Identity is the ID; a Price is owned by exactly one Rate.
type Price struct {
	id           uuid.UUID
	rateID       uuid.UUID
	dateRange    DateRange
	base         Money
	strategyID   string
	lastModified time.Time
}

// NewPrice constructs a Price with a generated ID and current timestamp.
func NewPrice(rateID uuid.UUID, dateRange DateRange, base Money, strategyID string) *Price {
	return &Price{
		id:           uuid.New(),
		rateID:       rateID,
		dateRange:    dateRange,
		base:         base,
		strategyID:   strategyID,
		lastModified: time.Now().UTC(),
	}
}

// ReconstructPrice rebuilds a Price from storage without touching identity
// or timestamps.
func ReconstructPrice(id, rateID uuid.UUID, dateRange DateRange, base Money, strategyID string, lastModified time.Time) *Price {
	return &Price{
		id:           id,
		rateID:       rateID,
		dateRange:    dateRange,
		base:         base,
		strategyID:   strategyID,
		lastModified: lastModified,
	}
}

// ID returns the price identity.
func (p *Price) ID() uuid.UUID { return p.id }

// RateID returns the owning rate.
func (p *Price) RateID() uuid.UUID { return p.rateID }

// Range returns the validity interval.
func (p *Price) Range() DateRange { return p.dateRange }

// Base returns the base amount.
func (p *Price) Base() Money { return p.base }

// StrategyID returns the calculation strategy identifier.
func (p *Price) StrategyID() string { return p.strategyID }

// LastModified returns the time of the most recent mutation.
func (p *Price) LastModified() time.Time { return p.lastModified }

// SetBase updates the base amount and bumps LastModified.
func (p *Price) SetBase(base Money) {
	p.base = base
	p.lastModified = time.Now().UTC()
}

// SetStrategy updates the calculation strategy and bumps LastModified.
func (p *Price) SetStrategy(strategyID string) {
	p.strategyID = strategyID
	p.lastModified = time.Now().UTC()
}

func (p *Price) String() string {
	return "Price{" + p.id.String() + " " + p.dateRange.String() + " " + p.base.String() + " " + p.strategyID + "}"
}
