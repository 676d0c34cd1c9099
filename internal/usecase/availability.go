package usecase

import (
	"time"

	"bookme/internal/data/entity"
)

// AvailableSessions returns one entry per fixed session label of the room:
// a label reads unavailable exactly when some booking occupies it on the
// same calendar day. The key set depends only on the room, never on the
// date, and the computation has no side effects.
func AvailableSessions(room *entity.Room, bookings []*entity.Booking, date time.Time) map[string]bool {
	availability := make(map[string]bool, len(room.Sessions))
	for _, session := range room.Sessions {
		availability[session] = true
	}

	for _, booking := range bookings {
		if booking.RoomID != room.ID {
			continue
		}
		if !entity.SameDay(booking.Date, date) {
			continue
		}
		if _, ok := availability[booking.Session]; ok {
			availability[booking.Session] = false
		}
	}

	return availability
}
