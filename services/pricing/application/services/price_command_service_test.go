package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
	"github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
	"github.com/ghuser/roomrates/services/pricing/domain/strategy"
)

// fakeRateRepo is an in-memory RateRepository recording saves and published
// events.
type fakeRateRepo struct {
	rates     map[uuid.UUID]*models.Rate
	roomTypes map[uuid.UUID]*models.RoomType
	hotels    map[uuid.UUID]*models.Hotel

	saved     *models.Rate
	published *events.PriceChangedEvent
	created   *events.RateCreatedEvent
	saveErr   error
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{
		rates:     make(map[uuid.UUID]*models.Rate),
		roomTypes: make(map[uuid.UUID]*models.RoomType),
		hotels:    make(map[uuid.UUID]*models.Hotel),
	}
}

// seed creates a hotel, room type and empty rate and returns the rate.
func (f *fakeRateRepo) seed() *models.Rate {
	hotel := &models.Hotel{ID: uuid.New(), Name: "Grand Plaza"}
	roomType := &models.RoomType{ID: uuid.New(), HotelID: hotel.ID, Name: "Deluxe Double"}
	rate := models.NewRate(roomType.ID, "Standard Rate", "", true)
	f.hotels[hotel.ID] = hotel
	f.roomTypes[roomType.ID] = roomType
	f.rates[rate.ID()] = rate
	return rate
}

func (f *fakeRateRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Rate, error) {
	rate, ok := f.rates[id]
	if !ok {
		return nil, pricingdomain.ErrRateNotFound
	}
	return rate, nil
}

func (f *fakeRateRepo) FindPriceByRateAndRange(_ context.Context, rateID uuid.UUID, dateRange models.DateRange) (*models.Price, error) {
	rate, ok := f.rates[rateID]
	if !ok {
		return nil, pricingdomain.ErrRateNotFound
	}
	return rate.PriceForRange(dateRange), nil
}

func (f *fakeRateRepo) Create(_ context.Context, rate *models.Rate, event *events.RateCreatedEvent) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rates[rate.ID()] = rate
	f.created = event
	return nil
}

func (f *fakeRateRepo) Save(_ context.Context, rate *models.Rate, event *events.PriceChangedEvent) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rates[rate.ID()] = rate
	f.saved = rate
	f.published = event
	return nil
}

func (f *fakeRateRepo) FindRoomTypeByID(_ context.Context, id uuid.UUID) (*models.RoomType, error) {
	rt, ok := f.roomTypes[id]
	if !ok {
		return nil, pricingdomain.ErrRoomTypeNotFound
	}
	return rt, nil
}

func (f *fakeRateRepo) FindHotelByID(_ context.Context, id uuid.UUID) (*models.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, pricingdomain.ErrHotelNotFound
	}
	return h, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func updateCmd(rateID uuid.UUID, start, end time.Time, amount float64, strategyID string) UpdatePriceCommand {
	return UpdatePriceCommand{
		RateID:       rateID,
		StartDate:    start,
		EndDate:      end,
		Amount:       models.USD(amount).Amount(),
		CurrencyCode: models.DefaultCurrency,
		Strategy:     strategyID,
	}
}

func TestUpdatePrice(t *testing.T) {
	t.Run("creates a price and publishes the change", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		priceID, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 1), day(2024, 7, 10), 150, strategy.TypeStandard))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if priceID == uuid.Nil {
			t.Fatal("expected a price ID")
		}
		if repo.saved == nil {
			t.Fatal("expected the rate saved")
		}
		if repo.published == nil {
			t.Fatal("expected a change notification")
		}
		if repo.published.PriceID != priceID {
			t.Fatal("expected the notification to carry the new price ID")
		}
		roomType := repo.roomTypes[rate.RoomTypeID()]
		if repo.published.HotelID != roomType.HotelID {
			t.Fatal("expected the notification to carry the owning hotel")
		}
	})

	t.Run("updates an exact-range price in place", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		first, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 1), day(2024, 7, 10), 150, strategy.TypeStandard))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 1), day(2024, 7, 10), 175, strategy.TypeDayOfWeek))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first != second {
			t.Fatal("expected the same price identity for the same range")
		}
		prices := repo.rates[rate.ID()].Prices()
		if len(prices) != 1 {
			t.Fatalf("expected 1 price, got %d", len(prices))
		}
		if !prices[0].Base().Is(models.USD(175)) {
			t.Fatalf("expected updated base, got %s", prices[0].Base())
		}
		if prices[0].StrategyID() != strategy.TypeDayOfWeek {
			t.Fatalf("expected updated strategy, got %s", prices[0].StrategyID())
		}
	})

	t.Run("a different overlapping range creates a new price and evicts the old", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		first, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 10), day(2024, 7, 20), 100, strategy.TypeStandard))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 15), day(2024, 7, 25), 150, strategy.TypeStandard))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first == second {
			t.Fatal("expected a new price identity for a different range")
		}
		prices := repo.rates[rate.ID()].Prices()
		if len(prices) != 1 {
			t.Fatalf("expected the overlapped price evicted, got %d prices", len(prices))
		}
		if prices[0].ID() != second {
			t.Fatal("expected the new price to survive")
		}
	})

	t.Run("rejects unknown strategies before touching state", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		_, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 1), day(2024, 7, 10), 150, "HOLIDAY"))
		if !errors.Is(err, pricingdomain.ErrUnknownStrategy) {
			t.Fatalf("expected ErrUnknownStrategy, got %v", err)
		}
		if repo.saved != nil || repo.published != nil {
			t.Fatal("expected no state touched")
		}
	})

	t.Run("rejects invalid ranges", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		_, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 10), day(2024, 7, 1), 150, strategy.TypeStandard))
		if !errors.Is(err, pricingdomain.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("fails for a missing rate", func(t *testing.T) {
		repo := newFakeRateRepo()
		repo.seed()
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		_, err := svc.UpdatePrice(context.Background(),
			updateCmd(uuid.New(), day(2024, 7, 1), day(2024, 7, 10), 150, strategy.TypeStandard))
		if !errors.Is(err, pricingdomain.ErrRateNotFound) {
			t.Fatalf("expected ErrRateNotFound, got %v", err)
		}
	})

	t.Run("propagates save failures", func(t *testing.T) {
		repo := newFakeRateRepo()
		rate := repo.seed()
		repo.saveErr = errors.New("connection reset")
		svc := NewPriceCommandService(repo, strategy.NewDefaultRegistry())

		_, err := svc.UpdatePrice(context.Background(),
			updateCmd(rate.ID(), day(2024, 7, 1), day(2024, 7, 10), 150, strategy.TypeStandard))
		if err == nil {
			t.Fatal("expected save error surfaced")
		}
	})
}

func TestCreateRate(t *testing.T) {
	t.Run("creates a rate under an existing room type", func(t *testing.T) {
		repo := newFakeRateRepo()
		seeded := repo.seed()
		roomType := repo.roomTypes[seeded.RoomTypeID()]
		svc := NewRateCommandService(repo)

		rate, err := svc.CreateRate(context.Background(), CreateRateCommand{
			RoomTypeID:  roomType.ID,
			Name:        "Weekend Special",
			Description: "Friday and Saturday deal",
			Active:      true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate.Name != "Weekend Special" || !rate.Active {
			t.Fatal("expected command fields applied")
		}
		if len(rate.Prices()) != 0 {
			t.Fatal("expected a new rate to start without prices")
		}
		if repo.created == nil {
			t.Fatal("expected a creation event")
		}
		if repo.created.HotelID != roomType.HotelID {
			t.Fatal("expected the event to carry the owning hotel")
		}
	})

	t.Run("fails for a missing room type", func(t *testing.T) {
		repo := newFakeRateRepo()
		svc := NewRateCommandService(repo)

		_, err := svc.CreateRate(context.Background(), CreateRateCommand{
			RoomTypeID: uuid.New(),
			Name:       "Weekend Special",
			Active:     true,
		})
		if !errors.Is(err, pricingdomain.ErrRoomTypeNotFound) {
			t.Fatalf("expected ErrRoomTypeNotFound, got %v", err)
		}
	})
}
