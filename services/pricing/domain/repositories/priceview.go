package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// PriceViewRepository is the query-side persistence port for the per-day
// read model. All queries are index-scoped; none imply a full-table scan.
type PriceViewRepository interface {
	// ReplaceForPrice atomically swaps the row set for one price: it deletes
	// every row with the given priceID and inserts rows in a single
	// transaction, so a partial row set is never observable.
	//
	// modifiedAt is the notification timestamp being projected. When the
	// stored state for priceID is already at or past modifiedAt the call is
	// a no-op and reports skipped=true — the guard that makes at-least-once,
	// possibly reordered delivery safe (strictly-newer-wins; equal
	// timestamps are duplicates).
	ReplaceForPrice(ctx context.Context, priceID uuid.UUID, modifiedAt time.Time, rows []models.PriceViewRow) (skipped bool, err error)

	// DeleteAllWithPriceID removes every row for the given price.
	DeleteAllWithPriceID(ctx context.Context, priceID uuid.UUID) error

	// InsertBatch inserts the given rows.
	InsertBatch(ctx context.Context, rows []models.PriceViewRow) error

	FindByHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.PriceViewRow, error)
	FindByRoomTypeAndDate(ctx context.Context, roomTypeID uuid.UUID, date time.Time) ([]models.PriceViewRow, error)
	FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, dateRange models.DateRange) ([]models.PriceViewRow, error)
}
