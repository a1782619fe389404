package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/roomrates/pkg/database"
	"github.com/ghuser/roomrates/pkg/events"
	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
	domainevents "github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// RateRepository implements repositories.RateRepository against PostgreSQL.
type RateRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewRateRepository returns a RateRepository backed by the given connection
// pool and event bus. The bus is used to publish change notifications inside
// the save transaction; it may be nil, in which case saves do not publish.
func NewRateRepository(database *database.Database, bus *events.EventBus) *RateRepository {
	return &RateRepository{db: database, bus: bus}
}

// FindByID loads a Rate with its full price collection.
func (r *RateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rate, error) {
	var (
		roomTypeID  uuid.UUID
		name        string
		description string
		active      bool
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT room_type_id, name, description, active FROM rates WHERE id = $1`,
		id,
	).Scan(&roomTypeID, &name, &description, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricingdomain.ErrRateNotFound
		}
		return nil, fmt.Errorf("query rate: %w", err)
	}

	prices, err := r.pricesForRate(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.ReconstructRate(id, roomTypeID, name, description, active, prices), nil
}

// FindPriceByRateAndRange returns the price stored for exactly the given
// (rate, range) pair, or nil when no such price exists.
func (r *RateRepository) FindPriceByRateAndRange(ctx context.Context, rateID uuid.UUID, dateRange models.DateRange) (*models.Price, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, rate_id, start_date, end_date, base_amount, currency_code, strategy, last_modified
		   FROM prices
		  WHERE rate_id = $1 AND start_date = $2 AND end_date = $3`,
		rateID, dateRange.Start(), dateRange.End(),
	)
	price, err := scanPrice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query price by range: %w", err)
	}
	return price, nil
}

// Create persists a new Rate and publishes event within the same transaction.
// Returns an error on duplicate rate IDs.
func (r *RateRepository) Create(ctx context.Context, rate *models.Rate, event *domainevents.RateCreatedEvent) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rates (id, room_type_id, name, description, active)
			 VALUES ($1, $2, $3, $4, $5)`,
			rate.ID(), rate.RoomTypeID(), rate.Name, rate.Description, rate.Active,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return pricingdomain.ErrRoomTypeNotFound
			}
			return fmt.Errorf("insert rate: %w", err)
		}

		if r.bus != nil && event != nil {
			if err := r.publishTx(tx, domainevents.TopicRateCreated, event.EventID, event.Version, event); err != nil {
				return fmt.Errorf("publish rate created: %w", err)
			}
		}
		return nil
	})
}

// Save persists the Rate and its price collection as one atomic unit.
//
// The price collection is replaced wholesale: rows evicted from the aggregate
// by AddPrice disappear because they are no longer in rate.Prices(). Stored
// price identities and timestamps are preserved since rows are rewritten from
// the reconstructed Price values. When event is non-nil it is published
// through the bus inside the same transaction (transactional outbox), so the
// notification is only visible if the save commits.
func (r *RateRepository) Save(ctx context.Context, rate *models.Rate, event *domainevents.PriceChangedEvent) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rates (id, room_type_id, name, description, active)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			    SET name = EXCLUDED.name,
			        description = EXCLUDED.description,
			        active = EXCLUDED.active`,
			rate.ID(), rate.RoomTypeID(), rate.Name, rate.Description, rate.Active,
		)
		if err != nil {
			return fmt.Errorf("upsert rate: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE rate_id = $1`, rate.ID()); err != nil {
			return fmt.Errorf("clear prices: %w", err)
		}
		for _, p := range rate.Prices() {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO prices (id, rate_id, start_date, end_date, base_amount, currency_code, strategy, last_modified)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				p.ID(), rate.ID(), p.Range().Start(), p.Range().End(),
				p.Base().Amount(), p.Base().Currency(), p.StrategyID(), p.LastModified(),
			)
			if err != nil {
				return fmt.Errorf("insert price %s: %w", p.ID(), err)
			}
		}

		if r.bus != nil && event != nil {
			if err := r.publishTx(tx, domainevents.TopicPriceChanged, event.EventID, event.Version, event); err != nil {
				return fmt.Errorf("publish price changed: %w", err)
			}
		}
		return nil
	})
}

// FindRoomTypeByID resolves the room type owning a rate.
func (r *RateRepository) FindRoomTypeByID(ctx context.Context, id uuid.UUID) (*models.RoomType, error) {
	rt := models.RoomType{ID: id}
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT hotel_id, name FROM room_types WHERE id = $1`,
		id,
	).Scan(&rt.HotelID, &rt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricingdomain.ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("query room type: %w", err)
	}
	return &rt, nil
}

// FindHotelByID resolves a hotel.
func (r *RateRepository) FindHotelByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	h := models.Hotel{ID: id}
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT name FROM hotels WHERE id = $1`,
		id,
	).Scan(&h.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricingdomain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("query hotel: %w", err)
	}
	return &h, nil
}

func (r *RateRepository) pricesForRate(ctx context.Context, rateID uuid.UUID) ([]*models.Price, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, rate_id, start_date, end_date, base_amount, currency_code, strategy, last_modified
		   FROM prices
		  WHERE rate_id = $1
		  ORDER BY start_date`,
		rateID,
	)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var prices []*models.Price
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}
	return prices, nil
}

// publishTx publishes event on topic through a publisher bound to tx.
func (r *RateRepository) publishTx(tx *sql.Tx, topic string, eventID uuid.UUID, version int, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(version))
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPrice(s scanner) (*models.Price, error) {
	var (
		id, rateID         uuid.UUID
		startDate, endDate time.Time
		amount             decimal.Decimal
		currency, strategy string
		lastModified       time.Time
	)
	if err := s.Scan(&id, &rateID, &startDate, &endDate, &amount, &currency, &strategy, &lastModified); err != nil {
		return nil, err
	}
	dateRange, err := models.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("stored range %s..%s: %w", startDate, endDate, err)
	}
	return models.ReconstructPrice(id, rateID, dateRange, models.NewMoney(amount, currency), strategy, lastModified), nil
}
