package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/pkg/database"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// PriceViewRepository implements repositories.PriceViewRepository against
// PostgreSQL.
type PriceViewRepository struct {
	db *database.Database
}

// NewPriceViewRepository returns a PriceViewRepository backed by the given
// connection pool.
func NewPriceViewRepository(database *database.Database) *PriceViewRepository {
	return &PriceViewRepository{db: database}
}

// ReplaceForPrice atomically swaps the row set for one price.
//
// The stored max(last_modified) for priceID is read under FOR UPDATE first;
// when it is at or past modifiedAt the projected state already reflects this
// or a newer mutation and the call reports skipped=true without touching rows.
func (r *PriceViewRepository) ReplaceForPrice(ctx context.Context, priceID uuid.UUID, modifiedAt time.Time, rows []models.PriceViewRow) (bool, error) {
	skipped := false
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var stored sql.NullTime
		err := tx.QueryRowContext(ctx,
			`SELECT max(last_modified)
			   FROM (SELECT last_modified FROM price_views WHERE price_id = $1 FOR UPDATE) existing`,
			priceID,
		).Scan(&stored)
		if err != nil {
			return fmt.Errorf("check projected state: %w", err)
		}
		if stored.Valid && !stored.Time.Before(modifiedAt) {
			skipped = true
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM price_views WHERE price_id = $1`, priceID); err != nil {
			return fmt.Errorf("delete rows: %w", err)
		}
		return insertRows(ctx, tx, rows)
	})
	return skipped, err
}

// DeleteAllWithPriceID removes every row for the given price.
func (r *PriceViewRepository) DeleteAllWithPriceID(ctx context.Context, priceID uuid.UUID) error {
	if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM price_views WHERE price_id = $1`, priceID); err != nil {
		return fmt.Errorf("delete price rows: %w", err)
	}
	return nil
}

// InsertBatch inserts the given rows outside any replacement transaction.
func (r *PriceViewRepository) InsertBatch(ctx context.Context, rows []models.PriceViewRow) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertRows(ctx, tx, rows)
	})
}

// FindByHotelAndDate returns every projected row for a hotel on one date.
func (r *PriceViewRepository) FindByHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	return r.query(ctx,
		selectRows+` WHERE hotel_id = $1 AND date = $2 ORDER BY room_type_id, rate_id`,
		hotelID, models.NormalizeDate(date),
	)
}

// FindByRoomTypeAndDate returns every projected row for a room type on one date.
func (r *PriceViewRepository) FindByRoomTypeAndDate(ctx context.Context, roomTypeID uuid.UUID, date time.Time) ([]models.PriceViewRow, error) {
	return r.query(ctx,
		selectRows+` WHERE room_type_id = $1 AND date = $2 ORDER BY rate_id`,
		roomTypeID, models.NormalizeDate(date),
	)
}

// FindByHotelAndDateRange returns every projected row for a hotel across an
// inclusive date range, ordered by date.
func (r *PriceViewRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, dateRange models.DateRange) ([]models.PriceViewRow, error) {
	return r.query(ctx,
		selectRows+` WHERE hotel_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, room_type_id, rate_id`,
		hotelID, dateRange.Start(), dateRange.End(),
	)
}

const selectRows = `SELECT id, price_id, rate_id, room_type_id, hotel_id, date,
       base_amount, calculated_amount, currency_code, strategy, last_modified
  FROM price_views`

func (r *PriceViewRepository) query(ctx context.Context, query string, args ...any) ([]models.PriceViewRow, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query price views: %w", err)
	}
	defer rows.Close()

	out := []models.PriceViewRow{}
	for rows.Next() {
		var v models.PriceViewRow
		if err := rows.Scan(
			&v.ID, &v.PriceID, &v.RateID, &v.RoomTypeID, &v.HotelID, &v.Date,
			&v.BaseAmount, &v.CalculatedAmount, &v.CurrencyCode, &v.Strategy, &v.LastModified,
		); err != nil {
			return nil, fmt.Errorf("scan price view: %w", err)
		}
		v.Date = models.NormalizeDate(v.Date)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price views: %w", err)
	}
	return out, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, rows []models.PriceViewRow) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_views (id, price_id, rate_id, room_type_id, hotel_id, date,
		                          base_amount, calculated_amount, currency_code, strategy, last_modified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range rows {
		if _, err := stmt.ExecContext(ctx,
			v.ID, v.PriceID, v.RateID, v.RoomTypeID, v.HotelID, v.Date,
			v.BaseAmount, v.CalculatedAmount, v.CurrencyCode, v.Strategy, v.LastModified,
		); err != nil {
			return fmt.Errorf("insert row for %s: %w", v.Date.Format(time.DateOnly), err)
		}
	}
	return nil
}
