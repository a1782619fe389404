package services

import (
	"github.com/ghuser/roomrates/pkg/app"
	pkgcache "github.com/ghuser/roomrates/pkg/cache"
	"github.com/ghuser/roomrates/services/pricing/domain/strategy"
	"github.com/ghuser/roomrates/services/pricing/infrastructure/persistence/postgres"
)

// Services bundles the pricing application services for route registration.
type Services struct {
	Command    *PriceCommandService
	Rates      *RateCommandService
	Query      *PriceQueryService
	Strategies *strategy.Registry
}

// New wires the pricing services against the shared application dependencies.
func New(a *app.Application) *Services {
	registry := strategy.NewDefaultRegistry()

	rateRepo := postgres.NewRateRepository(a.Db, a.EventBus)
	viewRepo := postgres.NewPriceViewRepository(a.Db)

	var priceCache *pkgcache.PriceCache
	if a.Redis != nil {
		priceCache = pkgcache.NewPriceCache(a.Redis)
	}

	return &Services{
		Command:    NewPriceCommandService(rateRepo, registry),
		Rates:      NewRateCommandService(rateRepo),
		Query:      NewPriceQueryService(viewRepo, priceCache),
		Strategies: registry,
	}
}
