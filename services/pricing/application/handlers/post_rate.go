package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/roomrates/pkg/errhttp"
	"github.com/ghuser/roomrates/pkg/httpx"
	pkgvalidator "github.com/ghuser/roomrates/pkg/validator"
	appsvcs "github.com/ghuser/roomrates/services/pricing/application/services"
)

// CreateRateRequest is the request body for POST /rates.
// Active defaults to true when omitted.
type CreateRateRequest struct {
	RoomTypeID  string `json:"room_type_id" validate:"required,uuid4"`
	Name        string `json:"name"         validate:"required,min=1,max=255"`
	Description string `json:"description"  validate:"max=1024"`
	Active      *bool  `json:"active"`
}

// CreateRateResponse is returned on successful rate creation.
type CreateRateResponse struct {
	ID          uuid.UUID `json:"id"`
	RoomTypeID  uuid.UUID `json:"room_type_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
}

// PostRateHandler handles POST /rates requests.
type PostRateHandler struct {
	svc *appsvcs.Services
}

// NewPostRateHandler returns a PostRateHandler backed by the given services.
func NewPostRateHandler(svc *appsvcs.Services) *PostRateHandler {
	return &PostRateHandler{svc: svc}
}

// Execute creates a new pricing plan for a room type.
func (h *PostRateHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateRateRequest](w, r)
	if !ok {
		return
	}

	roomTypeID, err := uuid.Parse(req.RoomTypeID)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "room_type_id must be a valid UUID")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rate, err := h.svc.Rates.CreateRate(r.Context(), appsvcs.CreateRateCommand{
		RoomTypeID:  roomTypeID,
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateRateResponse{
		ID:          rate.ID(),
		RoomTypeID:  rate.RoomTypeID(),
		Name:        rate.Name,
		Description: rate.Description,
		Active:      rate.Active,
	})
}
