package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/roomrates/pkg/app"
	"github.com/ghuser/roomrates/services/pricing/application/handlers"
	appsvcs "github.com/ghuser/roomrates/services/pricing/application/services"
)

// PricingRoutes registers pricing endpoints on the provided chi router.
func PricingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	queries := handlers.NewGetPricesHandler(svcs)
	r.Group(func(r chi.Router) {
		r.Route("/prices", func(r chi.Router) {
			r.Post("/", handlers.NewPostPriceHandler(svcs).Execute)
			r.Get("/hotels/{hotelID}", queries.HotelDay)
			r.Get("/hotels/{hotelID}/range", queries.HotelRange)
			r.Get("/room-types/{roomTypeID}", queries.RoomTypeDay)
		})
		r.Route("/rates", func(r chi.Router) {
			r.Post("/", handlers.NewPostRateHandler(svcs).Execute)
		})
	})
}
