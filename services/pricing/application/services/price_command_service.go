package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
	"github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
	"github.com/ghuser/roomrates/services/pricing/domain/repositories"
	"github.com/ghuser/roomrates/services/pricing/domain/strategy"
)

// UpdatePriceCommand carries one price mutation request.
type UpdatePriceCommand struct {
	RateID       uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	Amount       decimal.Decimal
	CurrencyCode string
	Strategy     string
}

// PriceCommandService handles price mutations: it validates the command,
// applies the Rate aggregate's overlap-eviction insert, persists the result
// and publishes exactly one PriceChangedEvent in the same transaction.
type PriceCommandService struct {
	rates      repositories.RateRepository
	strategies *strategy.Registry
}

// NewPriceCommandService returns a PriceCommandService wired with the given
// repository and strategy registry.
func NewPriceCommandService(rates repositories.RateRepository, strategies *strategy.Registry) *PriceCommandService {
	return &PriceCommandService{rates: rates, strategies: strategies}
}

// UpdatePrice creates or updates the price stored for (rateID, dateRange)
// and returns its ID.
//
// All validation happens before any state is touched: an unknown strategy,
// an invalid range or a missing rate fail the command with no partial state.
// When a price already exists for the exact (rate, range) pair it is updated
// in place, preserving its identity; otherwise a new price is created. Either
// way the aggregate's AddPrice evicts every previously stored price whose
// range overlaps the new one.
//
// The change notification is published through the repository inside the
// save transaction, so it only becomes visible once the mutation commits.
func (s *PriceCommandService) UpdatePrice(ctx context.Context, cmd UpdatePriceCommand) (uuid.UUID, error) {
	if !s.strategies.Has(cmd.Strategy) {
		return uuid.Nil, fmt.Errorf("%w: %q", pricingdomain.ErrUnknownStrategy, cmd.Strategy)
	}

	dateRange, err := models.NewDateRange(cmd.StartDate, cmd.EndDate)
	if err != nil {
		return uuid.Nil, err
	}
	base := models.NewMoney(cmd.Amount, cmd.CurrencyCode)

	rate, err := s.rates.FindByID(ctx, cmd.RateID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find rate: %w", err)
	}

	price, err := s.rates.FindPriceByRateAndRange(ctx, rate.ID(), dateRange)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find price: %w", err)
	}
	if price != nil {
		price.SetBase(base)
		price.SetStrategy(cmd.Strategy)
	} else {
		price = models.NewPrice(rate.ID(), dateRange, base, cmd.Strategy)
	}

	rate.AddPrice(price)

	// Resolve the ownership chain up front so the event carries the hotel:
	// the projection must never have to read command-side storage.
	roomType, err := s.rates.FindRoomTypeByID(ctx, rate.RoomTypeID())
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve room type: %w", err)
	}

	event := events.NewPriceChangedEvent(price, roomType.ID, roomType.HotelID)
	if err := s.rates.Save(ctx, rate, &event); err != nil {
		return uuid.Nil, fmt.Errorf("save rate: %w", err)
	}

	return price.ID(), nil
}
