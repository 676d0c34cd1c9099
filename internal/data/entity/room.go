package entity

// DefaultSessions are the six fixed daily time slots every room carries.
var DefaultSessions = []string{
	"08:45 - 09:55",
	"10:10 - 11:20",
	"11:35 - 12:45",
	"13:00 - 14:10",
	"14:25 - 15:35",
	"15:50 - 17:00",
}

// Room is a bookable collaboration room. Coordinates locate the room's pin
// on the campus map and the point the map zooms to when the pin is focused.
type Room struct {
	Base
	Name          string   `db:"name"`
	PinX          float64  `db:"pin_x"`
	PinY          float64  `db:"pin_y"`
	ZoomX         float64  `db:"zoom_x"`
	ZoomY         float64  `db:"zoom_y"`
	ImagePreviews []string `db:"image_previews"`
	Sessions      []string `db:"sessions"`
}

// HasSession reports whether label is one of the room's fixed session slots.
func (r *Room) HasSession(label string) bool {
	for _, s := range r.Sessions {
		if s == label {
			return true
		}
	}
	return false
}
