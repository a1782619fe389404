package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/roomrates/pkg/errhttp"
	"github.com/ghuser/roomrates/pkg/httpx"
	appsvcs "github.com/ghuser/roomrates/services/pricing/application/services"
	"github.com/ghuser/roomrates/services/pricing/domain/models"
)

// PriceView is the wire form of one projected per-day price.
type PriceView struct {
	PriceID          uuid.UUID       `json:"price_id"`
	RateID           uuid.UUID       `json:"rate_id"`
	RoomTypeID       uuid.UUID       `json:"room_type_id"`
	HotelID          uuid.UUID       `json:"hotel_id"`
	Date             string          `json:"date"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	CalculatedAmount decimal.Decimal `json:"calculated_amount"`
	CurrencyCode     string          `json:"currency_code"`
	Strategy         string          `json:"strategy"`
}

// PricesResponse is returned by all price query endpoints.
type PricesResponse struct {
	Prices []PriceView `json:"prices"`
	Count  int         `json:"count"`
}

// GetPricesHandler handles the price read-model query endpoints.
type GetPricesHandler struct {
	svc *appsvcs.Services
}

// NewGetPricesHandler returns a GetPricesHandler backed by the given services.
func NewGetPricesHandler(svc *appsvcs.Services) *GetPricesHandler {
	return &GetPricesHandler{svc: svc}
}

// HotelDay serves GET /prices/hotels/{hotelID}?date=YYYY-MM-DD.
func (h *GetPricesHandler) HotelDay(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := pathUUID(w, r, "hotelID")
	if !ok {
		return
	}
	date, ok := queryDate(w, r, "date")
	if !ok {
		return
	}

	rows, err := h.svc.Query.PricesForHotelAndDate(r.Context(), hotelID, date)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(rows))
}

// HotelRange serves GET /prices/hotels/{hotelID}/range?start_date=...&end_date=....
func (h *GetPricesHandler) HotelRange(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := pathUUID(w, r, "hotelID")
	if !ok {
		return
	}
	start, ok := queryDate(w, r, "start_date")
	if !ok {
		return
	}
	end, ok := queryDate(w, r, "end_date")
	if !ok {
		return
	}
	dateRange, err := models.NewDateRange(start, end)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	rows, err := h.svc.Query.PricesForHotelAndRange(r.Context(), hotelID, dateRange)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(rows))
}

// RoomTypeDay serves GET /prices/room-types/{roomTypeID}?date=YYYY-MM-DD.
func (h *GetPricesHandler) RoomTypeDay(w http.ResponseWriter, r *http.Request) {
	roomTypeID, ok := pathUUID(w, r, "roomTypeID")
	if !ok {
		return
	}
	date, ok := queryDate(w, r, "date")
	if !ok {
		return
	}

	rows, err := h.svc.Query.PricesForRoomTypeAndDate(r.Context(), roomTypeID, date)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(rows))
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, param+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func queryDate(w http.ResponseWriter, r *http.Request, param string) (time.Time, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		httpx.JSONError(w, http.StatusBadRequest, param+" query parameter is required")
		return time.Time{}, false
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, param+" must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func toResponse(rows []models.PriceViewRow) PricesResponse {
	views := make([]PriceView, len(rows))
	for i, row := range rows {
		views[i] = PriceView{
			PriceID:          row.PriceID,
			RateID:           row.RateID,
			RoomTypeID:       row.RoomTypeID,
			HotelID:          row.HotelID,
			Date:             row.Date.Format(time.DateOnly),
			BaseAmount:       row.BaseAmount,
			CalculatedAmount: row.CalculatedAmount,
			CurrencyCode:     row.CurrencyCode,
			Strategy:         row.Strategy,
		}
	}
	return PricesResponse{Prices: views, Count: len(views)}
}
