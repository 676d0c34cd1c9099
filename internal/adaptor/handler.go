package adaptor

import (
	"errors"
	"net/http"

	"bookme/internal/usecase"
	"bookme/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Room    *RoomHandler
	Person  *PersonHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Room:    NewRoomHandler(service.Room, service.Booking, log),
		Person:  NewPersonHandler(service.Person, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a persistence failure: the client may
// retry by re-issuing the same request.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrPersonNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSlotUnavailable):
		log.Warn(operation+" failed - slot unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrPinMismatch):
		log.Warn(operation+" failed - pin mismatch",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
