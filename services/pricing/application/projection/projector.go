// Package projection rebuilds the per-day price read model from
// PriceChangedEvents. Each notification fans out into one PriceViewRow per
// covered date; the row set for a price is always replaced atomically so a
// partial projection is never observable, and reprocessing the same
// notification is a no-op.
package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgcache "github.com/ghuser/roomrates/pkg/cache"
	"github.com/ghuser/roomrates/pkg/logger"
	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
	"github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
	"github.com/ghuser/roomrates/services/pricing/domain/repositories"
	"github.com/ghuser/roomrates/services/pricing/domain/strategy"
)

// Builder consumes PriceChangedEvents and maintains the price_views read
// model plus the derived caches.
type Builder struct {
	views      repositories.PriceViewRepository
	strategies *strategy.Registry
	cache      *pkgcache.PriceCache
	log        logger.Logger
}

// NewBuilder returns a projection Builder. cache may be nil, in which case
// eviction is skipped.
func NewBuilder(views repositories.PriceViewRepository, strategies *strategy.Registry, cache *pkgcache.PriceCache, log logger.Logger) *Builder {
	return &Builder{views: views, strategies: strategies, cache: cache, log: log}
}

// Handler adapts Apply to the event bus message signature.
// The bus retries returned errors; Apply is idempotent so redelivery is safe.
func (b *Builder) Handler() func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var event events.PriceChangedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			return fmt.Errorf("projection: decode price change: %w", err)
		}
		return b.Apply(ctx, event)
	}
}

// Apply projects one price change notification:
//
//  1. verify the notification is newer than the currently projected state
//     for its priceId (strictly-newer-wins; equal timestamps are duplicates
//     and skipped);
//  2. delete every existing row for the priceId;
//  3. compute one row per covered date via the price's strategy;
//  4. insert the batch — steps 2–4 run in one transaction;
//  5. evict the caches keyed by the owning hotel and room type.
//
// A failure before commit leaves the previous row set intact. Unresolvable
// strategy or ownership identifiers are data-integrity failures: Apply
// returns an error and the bus surfaces it after retries, it is never
// silently dropped.
func (b *Builder) Apply(ctx context.Context, event events.PriceChangedEvent) error {
	if event.HotelID == uuid.Nil || event.RoomTypeID == uuid.Nil {
		return fmt.Errorf("projection: price %s: %w", event.PriceID, pricingdomain.ErrHotelNotFound)
	}

	rows, err := b.buildRows(event)
	if err != nil {
		return err
	}

	skipped, err := b.views.ReplaceForPrice(ctx, event.PriceID, event.ModifiedAt, rows)
	if err != nil {
		return fmt.Errorf("projection: replace rows for price %s: %w", event.PriceID, err)
	}
	if skipped {
		// Duplicate or out-of-order delivery; the projected state already
		// reflects this or a newer mutation.
		b.log.InfoContext(ctx, "projection: skipped stale notification",
			"price_id", event.PriceID,
			"event_id", event.EventID,
			"modified_at", event.ModifiedAt,
		)
		return nil
	}

	b.evictCaches(ctx, event.HotelID, event.RoomTypeID)

	b.log.InfoContext(ctx, "projection: rebuilt price rows",
		"price_id", event.PriceID,
		"rate_id", event.RateID,
		"rows", len(rows),
		"range", event.StartDate.Format(time.DateOnly)+".."+event.EndDate.Format(time.DateOnly),
	)
	return nil
}

// buildRows computes the full per-day row set for the event.
func (b *Builder) buildRows(event events.PriceChangedEvent) ([]models.PriceViewRow, error) {
	strat, err := b.strategies.Lookup(event.Strategy)
	if err != nil {
		return nil, fmt.Errorf("projection: price %s: %w", event.PriceID, err)
	}

	dateRange, err := event.Range()
	if err != nil {
		return nil, fmt.Errorf("projection: price %s: %w", event.PriceID, err)
	}
	base := event.Base()

	rows := make([]models.PriceViewRow, 0, dateRange.Days())
	for date := range dateRange.All() {
		calculated := strat.Calculate(base, date)
		rows = append(rows, models.PriceViewRow{
			ID:               uuid.New(),
			PriceID:          event.PriceID,
			RateID:           event.RateID,
			RoomTypeID:       event.RoomTypeID,
			HotelID:          event.HotelID,
			Date:             date,
			BaseAmount:       base.Amount(),
			CalculatedAmount: calculated.Amount(),
			CurrencyCode:     base.Currency(),
			Strategy:         event.Strategy,
			LastModified:     event.ModifiedAt,
		})
	}
	return rows, nil
}

// evictCaches drops the cached query results derived from the rebuilt rows.
// Eviction failures are logged, not returned: the cache is eventually
// consistent and entries expire by TTL anyway.
func (b *Builder) evictCaches(ctx context.Context, hotelID, roomTypeID uuid.UUID) {
	if b.cache == nil {
		return
	}
	if err := b.cache.EvictHotel(ctx, hotelID); err != nil {
		b.log.WarnContext(ctx, "projection: hotel cache evict failed", "hotel_id", hotelID, "error", err)
	}
	if err := b.cache.EvictRoomType(ctx, roomTypeID); err != nil {
		b.log.WarnContext(ctx, "projection: room type cache evict failed", "room_type_id", roomTypeID, "error", err)
	}
}
