package usecase

import "errors"

// Sentinel errors for the booking domain. Handlers map these onto HTTP
// statuses with errors.Is; everything else counts as a persistence failure
// and is retryable by re-issuing the request.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrPersonNotFound  = errors.New("person not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrValidation covers incomplete selections, malformed input and PINs
	// that fail the 4-digit predicate.
	ErrValidation = errors.New("validation failed")

	// ErrSlotUnavailable means the (room, day, session) triple already has a
	// booking.
	ErrSlotUnavailable = errors.New("session is not available on that date")

	// ErrPinMismatch means the presented PIN does not authenticate the
	// booking. Re-entry is always permitted.
	ErrPinMismatch = errors.New("pin does not match")
)
