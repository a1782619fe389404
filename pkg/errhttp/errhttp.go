// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/roomrates/pkg/httpx"
	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, pricingdomain.ErrRateNotFound),
		errors.Is(err, pricingdomain.ErrRoomTypeNotFound),
		errors.Is(err, pricingdomain.ErrHotelNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, pricingdomain.ErrUnknownStrategy),
		errors.Is(err, pricingdomain.ErrInvalidRange),
		errors.Is(err, pricingdomain.ErrCurrencyMismatch),
		errors.Is(err, pricingdomain.ErrDisjointRanges):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
