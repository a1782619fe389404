package strategy

import (
	"time"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// DemandLevel is the expected occupancy pressure for a date.
type DemandLevel int

// Demand levels and their multipliers.
const (
	DemandLow      DemandLevel = iota // 10% discount
	DemandNormal                      // standard price
	DemandHigh                        // 15% premium
	DemandVeryHigh                    // 30% premium
)

// Multiplier returns the price multiplier for the demand level.
// Unknown levels behave as DemandNormal.
func (l DemandLevel) Multiplier() float64 {
	switch l {
	case DemandLow:
		return 0.9
	case DemandHigh:
		return 1.15
	case DemandVeryHigh:
		return 1.3
	default:
		return 1.0
	}
}

func (l DemandLevel) String() string {
	switch l {
	case DemandLow:
		return "LOW"
	case DemandNormal:
		return "NORMAL"
	case DemandHigh:
		return "HIGH"
	case DemandVeryHigh:
		return "VERY_HIGH"
	default:
		return "NORMAL"
	}
}

// DemandBased scales the base amount by a per-date demand level,
// defaulting to DemandNormal for unconfigured dates.
type DemandBased struct {
	levels map[time.Time]DemandLevel
}

// NewDemandBased returns a DemandBased strategy with the given per-date
// levels. Keys are normalized to UTC midnight; the map is copied.
func NewDemandBased(levels map[time.Time]DemandLevel) DemandBased {
	normalized := make(map[time.Time]DemandLevel, len(levels))
	for d, l := range levels {
		normalized[models.NormalizeDate(d)] = l
	}
	return DemandBased{levels: normalized}
}

func (DemandBased) Type() string { return TypeDemandBased }

func (s DemandBased) Calculate(base models.Money, date time.Time) models.Money {
	level, ok := s.levels[models.NormalizeDate(date)]
	if !ok {
		level = DemandNormal
	}
	return base.Mul(level.Multiplier())
}
