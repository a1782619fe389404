package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/roomrates/pkg/cache"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
	"github.com/ghuser/roomrates/services/pricing/domain/repositories"
)

// PriceQueryService serves the per-day read model.
// Single-date lookups go through a read-through Redis cache; range queries
// hit the read model directly.
type PriceQueryService struct {
	views repositories.PriceViewRepository
	cache *pkgcache.PriceCache
}

// NewPriceQueryService returns a PriceQueryService wired with the given
// repository and cache. cache may be nil; all reads then go to storage.
func NewPriceQueryService(views repositories.PriceViewRepository, cache *pkgcache.PriceCache) *PriceQueryService {
	return &PriceQueryService{views: views, cache: cache}
}

// PricesForHotelAndDate returns every projected price row for a hotel on one date.
func (s *PriceQueryService) PricesForHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	if s.cache != nil {
		// A miss and a cache failure both fall through to storage; the read
		// must not fail because Redis is unavailable.
		if rows, err := s.cache.GetHotelDay(ctx, hotelID, date); err == nil {
			return rows, nil
		}
	}

	rows, err := s.views.FindByHotelAndDate(ctx, hotelID, date)
	if err != nil {
		return nil, fmt.Errorf("query hotel prices: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.SetHotelDay(context.Background(), hotelID, date, rows)
		}()
	}
	return rows, nil
}

// PricesForRoomTypeAndDate returns every projected price row for a room type on one date.
func (s *PriceQueryService) PricesForRoomTypeAndDate(ctx context.Context, roomTypeID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	if s.cache != nil {
		if rows, err := s.cache.GetRoomTypeDay(ctx, roomTypeID, date); err == nil {
			return rows, nil
		}
	}

	rows, err := s.views.FindByRoomTypeAndDate(ctx, roomTypeID, date)
	if err != nil {
		return nil, fmt.Errorf("query room type prices: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.SetRoomTypeDay(context.Background(), roomTypeID, date, rows)
		}()
	}
	return rows, nil
}

// PricesForHotelAndRange returns every projected price row for a hotel
// across an inclusive date range.
func (s *PriceQueryService) PricesForHotelAndRange(ctx context.Context, hotelID uuid.UUID, dateRange models.DateRange) ([]models.PriceViewRow, error) {
	rows, err := s.views.FindByHotelAndDateRange(ctx, hotelID, dateRange)
	if err != nil {
		return nil, fmt.Errorf("query hotel price range: %w", err)
	}
	return rows, nil
}
