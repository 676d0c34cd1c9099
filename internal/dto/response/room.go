package response

import (
	"sort"

	"bookme/internal/data/entity"
)

type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RoomResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	PinLocation   PointResponse `json:"pin_location"`
	ZoomLocation  PointResponse `json:"zoom_location"`
	ImagePreviews []string      `json:"image_previews"`
	Sessions      []string      `json:"sessions"`
}

type SessionAvailability struct {
	Session     string `json:"session"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	RoomID   string                `json:"room_id"`
	RoomName string                `json:"room_name"`
	Date     string                `json:"date"`
	Sessions []SessionAvailability `json:"sessions"`
}

// Helper converters
func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID.String(),
		Name:          room.Name,
		PinLocation:   PointResponse{X: room.PinX, Y: room.PinY},
		ZoomLocation:  PointResponse{X: room.ZoomX, Y: room.ZoomY},
		ImagePreviews: room.ImagePreviews,
		Sessions:      room.Sessions,
	}
}

// AvailabilityToResponse flattens the availability map into a list sorted by
// session label, the order a booking form displays the slots in.
func AvailabilityToResponse(room *entity.Room, date string, availability map[string]bool) *AvailabilityResponse {
	sessions := make([]SessionAvailability, 0, len(availability))
	for session, available := range availability {
		sessions = append(sessions, SessionAvailability{
			Session:     session,
			IsAvailable: available,
		})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Session < sessions[j].Session
	})

	return &AvailabilityResponse{
		RoomID:   room.ID.String(),
		RoomName: room.Name,
		Date:     date,
		Sessions: sessions,
	}
}
