package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

const (
	// PriceCacheTTL is the time-to-live for cached day-price query results.
	// Entries are also evicted eagerly when the projection rebuilds rows.
	PriceCacheTTL = time.Hour

	hotelPricesKeyPrefix    = "hotelprices"
	roomTypePricesKeyPrefix = "roomtypeprices"

	// evictScanCount is the SCAN batch size used during prefix eviction.
	evictScanCount = 200
)

// PriceCache caches query-side day-price results in Redis.
//
// Entries are keyed "{prefix}:{ownerID}:{date}" — one entry per query, scoped
// by hotel or room type. Eviction is by owner: a single price mutation
// invalidates every cached date for the owning hotel and room type, which
// keeps the eviction contract keyed by (hotelID) / (roomTypeID) while the
// cached values stay per-day.
type PriceCache struct {
	client *RedisClient
}

// NewPriceCache creates a PriceCache backed by the given RedisClient.
func NewPriceCache(r *RedisClient) *PriceCache {
	return &PriceCache{client: r}
}

// GetHotelDay retrieves the cached rows for a hotel and date.
// Returns redis.Nil error when the entry does not exist or has expired.
func (c *PriceCache) GetHotelDay(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	return c.get(ctx, dayKey(hotelPricesKeyPrefix, hotelID, date))
}

// SetHotelDay caches the rows for a hotel and date with the standard TTL.
func (c *PriceCache) SetHotelDay(ctx context.Context, hotelID uuid.UUID, date time.Time, rows []models.PriceViewRow) error {
	return c.set(ctx, dayKey(hotelPricesKeyPrefix, hotelID, date), rows)
}

// GetRoomTypeDay retrieves the cached rows for a room type and date.
// Returns redis.Nil error when the entry does not exist or has expired.
func (c *PriceCache) GetRoomTypeDay(ctx context.Context, roomTypeID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	return c.get(ctx, dayKey(roomTypePricesKeyPrefix, roomTypeID, date))
}

// SetRoomTypeDay caches the rows for a room type and date with the standard TTL.
func (c *PriceCache) SetRoomTypeDay(ctx context.Context, roomTypeID uuid.UUID, date time.Time, rows []models.PriceViewRow) error {
	return c.set(ctx, dayKey(roomTypePricesKeyPrefix, roomTypeID, date), rows)
}

// EvictHotel removes every cached entry for the given hotel.
func (c *PriceCache) EvictHotel(ctx context.Context, hotelID uuid.UUID) error {
	return c.evictPrefix(ctx, fmt.Sprintf("%s:%s:*", hotelPricesKeyPrefix, hotelID))
}

// EvictRoomType removes every cached entry for the given room type.
func (c *PriceCache) EvictRoomType(ctx context.Context, roomTypeID uuid.UUID) error {
	return c.evictPrefix(ctx, fmt.Sprintf("%s:%s:*", roomTypePricesKeyPrefix, roomTypeID))
}

func (c *PriceCache) get(ctx context.Context, key string) ([]models.PriceViewRow, error) {
	data, err := c.client.Client().Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var rows []models.PriceViewRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return rows, nil
}

func (c *PriceCache) set(ctx context.Context, key string, rows []models.PriceViewRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, key, data, PriceCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// evictPrefix deletes every key matching pattern via SCAN so eviction never
// blocks Redis the way KEYS would.
func (c *PriceCache) evictPrefix(ctx context.Context, pattern string) error {
	iter := c.client.Client().Scan(ctx, 0, pattern, evictScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %q: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Client().Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache evict %q: %w", pattern, err)
	}
	return nil
}

func dayKey(prefix string, id uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", prefix, id, models.NormalizeDate(date).Format(time.DateOnly))
}
