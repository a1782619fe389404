// Package strategy holds the price calculation strategies. Each strategy is a
// pure function from (base amount, date) to an adjusted amount, tagged by a
// stable string identifier. The set of variants is closed; external string
// identifiers only appear at the Registry boundary.
package strategy

import (
	"time"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// Strategy identifiers as stored on prices and carried in events.
const (
	TypeStandard    = "STANDARD"
	TypeDayOfWeek   = "DAY_OF_WEEK"
	TypeSeasonal    = "SEASONAL"
	TypeDemandBased = "DEMAND_BASED"
	TypeCombined    = "COMBINED"
)

// Strategy derives a day's effective amount from a base amount.
// Implementations are pure and safe for concurrent use.
type Strategy interface {
	// Type returns the stable string identifier of the strategy.
	Type() string

	// Calculate returns the adjusted amount for the given date.
	Calculate(base models.Money, date time.Time) models.Money
}

// Standard is the identity strategy: the base amount unchanged.
type Standard struct{}

// NewStandard returns the identity strategy.
func NewStandard() Standard { return Standard{} }

func (Standard) Type() string { return TypeStandard }

func (Standard) Calculate(base models.Money, _ time.Time) models.Money {
	return base
}
