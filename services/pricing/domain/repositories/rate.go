package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// RateRepository is the command-side persistence port for the Rate aggregate
// and its ownership chain. The domain layer owns this interface;
// infrastructure implements it.
type RateRepository interface {
	// FindByID loads a Rate with its full price collection.
	// Returns ErrRateNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rate, error)

	// FindPriceByRateAndRange returns the price stored for exactly the given
	// (rate, range) pair, or nil when no such price exists.
	FindPriceByRateAndRange(ctx context.Context, rateID uuid.UUID, dateRange models.DateRange) (*models.Price, error)

	// Create persists a new Rate and, when event is non-nil, publishes it in
	// the same transaction.
	Create(ctx context.Context, rate *models.Rate, event *events.RateCreatedEvent) error

	// Save persists the Rate and its price collection as one atomic unit and,
	// when event is non-nil, publishes it in the same transaction so the
	// notification can only become visible if the save commits.
	Save(ctx context.Context, rate *models.Rate, event *events.PriceChangedEvent) error

	// FindRoomTypeByID resolves the room type owning a rate.
	// Returns ErrRoomTypeNotFound when absent.
	FindRoomTypeByID(ctx context.Context, id uuid.UUID) (*models.RoomType, error)

	// FindHotelByID resolves the hotel owning a room type.
	// Returns ErrHotelNotFound when absent.
	FindHotelByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error)
}
