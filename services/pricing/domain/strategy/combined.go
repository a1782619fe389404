package strategy

import (
	"time"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// Combined applies an ordered list of strategies, threading each result into
// the next as its new base amount. Order is part of the configuration and is
// preserved exactly: chained multipliers are non-commutative whenever a later
// strategy derives its adjustment from the evolving amount, so [A, B] and
// [B, A] are different strategies. With no inner strategies the base amount
// is returned unchanged.
type Combined struct {
	strategies []Strategy
}

// NewCombined returns a Combined strategy applying the given strategies in order.
func NewCombined(strategies ...Strategy) Combined {
	return Combined{strategies: append([]Strategy(nil), strategies...)}
}

func (Combined) Type() string { return TypeCombined }

func (s Combined) Calculate(base models.Money, date time.Time) models.Money {
	result := base
	for _, inner := range s.strategies {
		result = inner.Calculate(result, date)
	}
	return result
}

// Strategies returns a copy of the inner strategies in application order.
func (s Combined) Strategies() []Strategy {
	return append([]Strategy(nil), s.strategies...)
}
