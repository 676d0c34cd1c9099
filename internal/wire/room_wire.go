package wire

import (
	"bookme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler) {
	r.Route("/api/rooms", func(r chi.Router) {
		// GET /api/rooms - List all rooms with map coordinates
		r.Get("/", roomHandler.GetRooms)

		// GET /api/rooms/{id} - Room detail
		r.Get("/{id}", roomHandler.GetRoomByID)

		// GET /api/rooms/{id}/availability - Per-session availability on a date
		r.Get("/{id}/availability", roomHandler.GetAvailability)
	})
}
