package domain

import "errors"

// Sentinel errors for the pricing domain. Use errors.Is() to check these.
var (
	// ErrInvalidRange indicates a date range with a missing endpoint or
	// a start date after its end date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrDisjointRanges indicates an intersection of two ranges that do not overlap.
	ErrDisjointRanges = errors.New("date ranges do not overlap")

	// ErrCurrencyMismatch indicates arithmetic or comparison between two
	// Money values of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnknownStrategy indicates a calculation strategy identifier that is
	// not registered.
	ErrUnknownStrategy = errors.New("unknown calculation strategy")

	// ErrRateNotFound indicates the requested rate does not exist.
	ErrRateNotFound = errors.New("rate not found")

	// ErrRoomTypeNotFound indicates the room type owning a rate could not be
	// resolved. On the projection side this is a data-integrity failure.
	ErrRoomTypeNotFound = errors.New("room type not found")

	// ErrHotelNotFound indicates the hotel owning a room type could not be
	// resolved. On the projection side this is a data-integrity failure.
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrStaleEvent marks a price change notification that is older than the
	// currently projected state. Stale events are skipped and logged, never
	// surfaced to callers.
	ErrStaleEvent = errors.New("stale price change notification")
)
