package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
	"github.com/ghuser/roomrates/services/pricing/domain/repositories"
)

// CreateRateCommand carries a request to create a pricing plan for a room type.
type CreateRateCommand struct {
	RoomTypeID  uuid.UUID
	Name        string
	Description string
	Active      bool
}

// RateCommandService handles rate lifecycle mutations.
type RateCommandService struct {
	rates repositories.RateRepository
}

// NewRateCommandService returns a RateCommandService wired with the given repository.
func NewRateCommandService(rates repositories.RateRepository) *RateCommandService {
	return &RateCommandService{rates: rates}
}

// CreateRate creates an empty rate attached to an existing room type and
// returns it. A RateCreatedEvent is published in the same transaction.
func (s *RateCommandService) CreateRate(ctx context.Context, cmd CreateRateCommand) (*models.Rate, error) {
	roomType, err := s.rates.FindRoomTypeByID(ctx, cmd.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("resolve room type: %w", err)
	}

	rate := models.NewRate(roomType.ID, cmd.Name, cmd.Description, cmd.Active)

	event := events.NewRateCreatedEvent(rate, roomType.HotelID)
	if err := s.rates.Create(ctx, rate, &event); err != nil {
		return nil, fmt.Errorf("create rate: %w", err)
	}
	return rate, nil
}
