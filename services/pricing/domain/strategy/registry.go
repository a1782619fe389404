package strategy

import (
	"fmt"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

// Registry maps external string identifiers to strategy instances.
// It is populated at startup and read-only afterwards; lookups are safe for
// concurrent use once registration is done.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// NewDefaultRegistry returns a Registry with the standard strategy set:
// STANDARD, DAY_OF_WEEK (default table), SEASONAL (no seasons),
// DEMAND_BASED (no configured dates) and COMBINED(day-of-week, seasonal).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewStandard())
	r.Register(NewDayOfWeek())
	r.Register(NewSeasonal())
	r.Register(NewDemandBased(nil))
	r.Register(NewCombined(NewDayOfWeek(), NewSeasonal()))
	return r
}

// Register adds or replaces the strategy under its own Type identifier.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Type()] = s
}

// Lookup returns the strategy registered under id.
// Fails with ErrUnknownStrategy when absent.
func (r *Registry) Lookup(id string) (Strategy, error) {
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pricingdomain.ErrUnknownStrategy, id)
	}
	return s, nil
}

// Has reports whether id is registered. Non-failing existence check used for
// input validation before any state mutation.
func (r *Registry) Has(id string) bool {
	_, ok := r.strategies[id]
	return ok
}
