package wire

import (
	"bookme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Create a booking (PIN gated)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - Booking history, searchable by room or person name
		r.Get("/", bookingHandler.GetBookings)

		// GET /api/bookings/{id} - Booking detail
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id} - Edit date/session/person, requires PIN
		r.Put("/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Remove booking, requires PIN
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
