package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/roomrates/pkg/errhttp"
	"github.com/ghuser/roomrates/pkg/httpx"
	pkgvalidator "github.com/ghuser/roomrates/pkg/validator"
	appsvcs "github.com/ghuser/roomrates/services/pricing/application/services"
)

// UpdatePriceRequest is the request body for POST /prices.
type UpdatePriceRequest struct {
	RateID       string          `json:"rate_id"       validate:"required,uuid4"`
	StartDate    string          `json:"start_date"    validate:"required,datetime=2006-01-02"`
	EndDate      string          `json:"end_date"      validate:"required,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount"        validate:"required"`
	CurrencyCode string          `json:"currency_code" validate:"required,iso4217"`
	Strategy     string          `json:"strategy"      validate:"required"`
}

// UpdatePriceResponse is returned on a successful price mutation.
type UpdatePriceResponse struct {
	PriceID uuid.UUID `json:"price_id"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PostPriceHandler handles POST /prices requests.
type PostPriceHandler struct {
	svc *appsvcs.Services
}

// NewPostPriceHandler returns a PostPriceHandler backed by the given services.
func NewPostPriceHandler(svc *appsvcs.Services) *PostPriceHandler {
	return &PostPriceHandler{svc: svc}
}

// Execute creates or updates the price for a (rate, date range) pair.
// Responds 202: the mutation is committed but the read model catches up
// asynchronously.
func (h *PostPriceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdatePriceRequest](w, r)
	if !ok {
		return
	}

	rateID, err := uuid.Parse(req.RateID)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "rate_id must be a valid UUID")
		return
	}
	start, _ := time.Parse(time.DateOnly, req.StartDate)
	end, _ := time.Parse(time.DateOnly, req.EndDate)

	if !req.Amount.IsPositive() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}

	priceID, err := h.svc.Command.UpdatePrice(r.Context(), appsvcs.UpdatePriceCommand{
		RateID:       rateID,
		StartDate:    start,
		EndDate:      end,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Strategy:     req.Strategy,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, UpdatePriceResponse{PriceID: priceID})
}
