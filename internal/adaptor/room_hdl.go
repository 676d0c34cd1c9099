package adaptor

import (
	"net/http"

	"bookme/internal/usecase"
	"bookme/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	booking usecase.BookingService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, booking usecase.BookingService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		booking: booking,
		log:     log.With(zap.String("handler", "room")),
	}
}

// GetRooms handles GET /api/rooms
func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoomByID handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	room, err := h.service.GetRoomByID(r.Context(), roomID)
	if err != nil {
		handleServiceError(w, h.log, err, "get room by ID")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// GetAvailability handles GET /api/rooms/{id}/availability?date=YYYY-MM-DD
// An optional exclude_booking query parameter makes that booking's own
// session read as available, for the edit form.
func (h *RoomHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	availability, err := h.booking.AvailableSessions(r.Context(), roomID, date, query.Get("exclude_booking"))
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
