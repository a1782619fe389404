package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceViewRow is the denormalized read model: one row per (price, date)
// pair, stamped with the full ownership chain so hotel- and room-type-scoped
// queries need no joins. Rows for one price are always replaced as a set.
type PriceViewRow struct {
	ID               uuid.UUID       `json:"id"`
	PriceID          uuid.UUID       `json:"price_id"`
	RateID           uuid.UUID       `json:"rate_id"`
	RoomTypeID       uuid.UUID       `json:"room_type_id"`
	HotelID          uuid.UUID       `json:"hotel_id"`
	Date             time.Time       `json:"date"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	CalculatedAmount decimal.Decimal `json:"calculated_amount"`
	CurrencyCode     string          `json:"currency_code"`
	Strategy         string          `json:"strategy"`
	LastModified     time.Time       `json:"last_modified"`
}
