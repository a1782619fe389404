package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// TopicPriceChanged is the Watermill topic published when a price is created
// or updated.
const TopicPriceChanged = "price.changed"

// PriceChangedEvent is published after a price mutation commits. It is the
// only channel between the command side and the projection: the payload
// carries everything the read model needs, so the projector never reads
// command-side storage.
type PriceChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	PriceID    uuid.UUID `json:"price_id"`
	RateID     uuid.UUID `json:"rate_id"`
	RoomTypeID uuid.UUID `json:"room_type_id"`
	HotelID    uuid.UUID `json:"hotel_id"`

	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
	Strategy     string          `json:"strategy"`
	ModifiedAt   time.Time       `json:"modified_at"`
}

// NewPriceChangedEvent builds the event for a committed price mutation.
// ModifiedAt is the price's LastModified so projectors can order
// notifications for the same price.
func NewPriceChangedEvent(price *models.Price, roomTypeID, hotelID uuid.UUID) PriceChangedEvent {
	return PriceChangedEvent{
		EventID:      uuid.New(),
		Version:      1,
		PriceID:      price.ID(),
		RateID:       price.RateID(),
		RoomTypeID:   roomTypeID,
		HotelID:      hotelID,
		StartDate:    price.Range().Start(),
		EndDate:      price.Range().End(),
		Amount:       price.Base().Amount(),
		CurrencyCode: price.Base().Currency(),
		Strategy:     price.StrategyID(),
		ModifiedAt:   price.LastModified(),
	}
}

// Range rebuilds the DateRange carried by the event.
func (e PriceChangedEvent) Range() (models.DateRange, error) {
	return models.NewDateRange(e.StartDate, e.EndDate)
}

// Base rebuilds the base Money carried by the event.
func (e PriceChangedEvent) Base() models.Money {
	return models.NewMoney(e.Amount, e.CurrencyCode)
}
