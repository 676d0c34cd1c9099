package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves one room's session on one calendar day for one person.
// Date carries calendar-day granularity only; it is normalized to midnight
// UTC before it reaches storage. PinHash is the bcrypt hash of the 4-digit
// PIN that gates edit and delete.
type Booking struct {
	Base
	RoomID   uuid.UUID `db:"room_id"`
	PersonID uuid.UUID `db:"person_id"`
	Date     time.Time `db:"booking_date"`
	Session  string    `db:"session"`
	PinHash  string    `db:"pin_hash"`
}

// NormalizeDate truncates a timestamp to its calendar day in UTC, the
// granularity bookings are stored and compared at.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}
