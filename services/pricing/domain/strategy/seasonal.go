package strategy

import (
	"time"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// Season pairs a date range with its price multiplier.
type Season struct {
	Range      models.DateRange
	Multiplier float64
}

// Seasonal scales the base amount by the multiplier of the first configured
// season containing the target date, 1.0 when no season matches.
//
// Seasons are evaluated in configuration order; when two configured seasons
// overlap the same date the earlier one wins. Whether overlapping seasons
// should be rejected instead is an open product question, so the first-match
// contract is the only ordering promise made here.
type Seasonal struct {
	seasons []Season
}

// NewSeasonal returns a Seasonal strategy with the given seasons in order.
func NewSeasonal(seasons ...Season) Seasonal {
	return Seasonal{seasons: append([]Season(nil), seasons...)}
}

func (Seasonal) Type() string { return TypeSeasonal }

func (s Seasonal) Calculate(base models.Money, date time.Time) models.Money {
	d := models.NormalizeDate(date)
	for _, season := range s.seasons {
		if season.Range.Contains(d) {
			return base.Mul(season.Multiplier)
		}
	}
	return base
}

// Seasons returns a copy of the configured seasons in evaluation order.
func (s Seasonal) Seasons() []Season {
	return append([]Season(nil), s.seasons...)
}
