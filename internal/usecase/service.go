package usecase

import (
	"bookme/internal/data/repository"
	"bookme/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Room    RoomService
	Person  PersonService
	Booking BookingService
}

func NewService(repo *repository.Repository, availabilityCache *cache.AvailabilityCache, log *zap.Logger) *Service {
	return &Service{
		Room:    NewRoomService(repo.Room, log),
		Person:  NewPersonService(repo.Person, log),
		Booking: NewBookingService(repo, availabilityCache, log),
	}
}
