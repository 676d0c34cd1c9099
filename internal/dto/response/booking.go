package response

import (
	"time"

	"bookme/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	RoomName   string    `json:"room_name,omitempty"`
	PersonID   string    `json:"person_id"`
	PersonName string    `json:"person_name,omitempty"`
	Date       string    `json:"date"`
	Session    string    `json:"session"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingToResponse converts a booking; room and person names are resolved
// by the caller. The PIN hash never leaves the service layer.
func BookingToResponse(booking *entity.Booking, roomName, personName string) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		RoomID:     booking.RoomID.String(),
		RoomName:   roomName,
		PersonID:   booking.PersonID.String(),
		PersonName: personName,
		Date:       booking.Date.Format("2006-01-02"),
		Session:    booking.Session,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}
