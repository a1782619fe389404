package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// TopicRateCreated is the Watermill topic published when a Rate is created.
const TopicRateCreated = "rate.created"

// RateCreatedEvent is published after a new Rate is persisted.
type RateCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	RateID     uuid.UUID `json:"rate_id"`
	RoomTypeID uuid.UUID `json:"room_type_id"`
	HotelID    uuid.UUID `json:"hotel_id"`

	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRateCreatedEvent builds the event for a committed rate creation.
func NewRateCreatedEvent(rate *models.Rate, hotelID uuid.UUID) RateCreatedEvent {
	return RateCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		RateID:      rate.ID(),
		RoomTypeID:  rate.RoomTypeID(),
		HotelID:     hotelID,
		Name:        rate.Name,
		Description: rate.Description,
		Active:      rate.Active,
		CreatedAt:   time.Now().UTC(),
	}
}
