package usecase

import (
	"context"
	"fmt"

	"bookme/internal/data/repository"
	"bookme/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
}

type roomService struct {
	repo repository.RoomRepository
	log  *zap.Logger
}

func NewRoomService(repo repository.RoomRepository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return roomResponses, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid room ID %s", ErrValidation, roomID)
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}
