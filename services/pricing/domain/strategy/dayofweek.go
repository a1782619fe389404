package strategy

import (
	"maps"
	"time"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// DefaultWeekdayMultipliers are the historical weekday adjustments:
// weekdays at par, Friday and Saturday 25% up, Sunday 10% up.
func DefaultWeekdayMultipliers() map[time.Weekday]float64 {
	return map[time.Weekday]float64{
		time.Monday:    1.0,
		time.Tuesday:   1.0,
		time.Wednesday: 1.0,
		time.Thursday:  1.0,
		time.Friday:    1.25,
		time.Saturday:  1.25,
		time.Sunday:    1.10,
	}
}

// DayOfWeek scales the base amount by a multiplier keyed on the weekday of
// the target date. Weekdays missing from the table fall back to 1.0.
type DayOfWeek struct {
	multipliers map[time.Weekday]float64
}

// NewDayOfWeek returns a DayOfWeek strategy with the default multiplier table.
func NewDayOfWeek() DayOfWeek {
	return NewDayOfWeekWith(DefaultWeekdayMultipliers())
}

// NewDayOfWeekWith returns a DayOfWeek strategy with a custom multiplier
// table. The table is copied.
func NewDayOfWeekWith(multipliers map[time.Weekday]float64) DayOfWeek {
	return DayOfWeek{multipliers: maps.Clone(multipliers)}
}

func (DayOfWeek) Type() string { return TypeDayOfWeek }

func (s DayOfWeek) Calculate(base models.Money, date time.Time) models.Money {
	multiplier, ok := s.multipliers[models.NormalizeDate(date).Weekday()]
	if !ok {
		multiplier = 1.0
	}
	return base.Mul(multiplier)
}

// Multipliers returns a copy of the multiplier table.
func (s DayOfWeek) Multipliers() map[time.Weekday]float64 {
	return maps.Clone(s.multipliers)
}
