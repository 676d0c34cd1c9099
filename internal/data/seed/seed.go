package seed

import (
	"context"
	"fmt"
	"time"

	"bookme/internal/data/entity"
	"bookme/internal/data/repository"
	"bookme/pkg/database"
	"bookme/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	pin_x DOUBLE PRECISION NOT NULL,
	pin_y DOUBLE PRECISION NOT NULL,
	zoom_x DOUBLE PRECISION NOT NULL,
	zoom_y DOUBLE PRECISION NOT NULL,
	image_previews TEXT[] NOT NULL DEFAULT '{}',
	sessions TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	total_booked INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	room_id UUID NOT NULL REFERENCES rooms(id),
	person_id UUID NOT NULL REFERENCES persons(id),
	booking_date DATE NOT NULL,
	session TEXT NOT NULL,
	pin_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT bookings_room_day_session_key UNIQUE (room_id, booking_date, session)
);
`

// SampleRooms returns the fixed set of collaboration rooms with their map
// pin locations, zoom focus points and ordered image preview identifiers.
func SampleRooms() []*entity.Room {
	names := []string{
		"Collab Room 1",
		"Collab Room 2",
		"Collab Room 3",
		"Collab Room 4",
		"Collab Room 5",
		"Collab Room 7",
		"Collab Room 7A",
	}

	pins := [][2]float64{
		{-60, 90},
		{-160, 100},
		{-240, 60},
		{-500, -110},
		{-415, -230},
		{490, 120},
		{510, -30},
	}

	zooms := [][2]float64{
		{78.6667, -379.0},
		{191.0, -359.3333},
		{230.3333, -330.3333},
		{460.0, -180.0},
		{411.3333, -83.6667},
		{-464.6667, -405.0},
		{-463.6666, -270.0},
	}

	images := [][]string{
		{"Collab Room 1", "Collab Room 1", "Collab Room 1"},
		{"Collab Room 2", "Collab Room 2", "Collab Room 2"},
		{"Collab Room 3", "Collab Room 3 - 1", "Collab Room 3 - 2"},
		{"Collab Room 4", "Collab Room 4 - 2", "Collab Room 4 - 3"},
		{"Collab Room 5", "Collab Room 5 - 2", "Collab Room 5 - 3"},
		{"Collab Room 7", "Collab Room 7", "Collab Room 7"},
		{"Collab Room 7A", "Collab Room 7A", "Collab Room 7A"},
	}

	now := time.Now()
	rooms := make([]*entity.Room, len(names))
	for i, name := range names {
		rooms[i] = &entity.Room{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:          name,
			PinX:          pins[i][0],
			PinY:          pins[i][1],
			ZoomX:         zooms[i][0],
			ZoomY:         zooms[i][1],
			ImagePreviews: images[i],
			Sessions:      entity.DefaultSessions,
		}
	}
	return rooms
}

// SamplePersons returns the fixed set of persons with their initial booking
// counts.
func SamplePersons() []*entity.Person {
	seed := []struct {
		name        string
		totalBooked int
	}{
		{"Sigma", 1},
		{"Budiono", 4},
		{"Wahyu", 2},
		{"Rizzler", 3},
		{"Broski", 5},
	}

	now := time.Now()
	persons := make([]*entity.Person, len(seed))
	for i, p := range seed {
		persons[i] = &entity.Person{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:        p.name,
			TotalBooked: p.totalBooked,
		}
	}
	return persons
}

// demoPins are the PINs of the optional demo bookings, one per person.
var demoPins = []string{"1234", "2345", "3456", "4567", "5678"}

// Run creates the schema and populates the fixed sample set on first start.
// A non-empty rooms table means a previous run already seeded; nothing is
// touched then.
func Run(ctx context.Context, db database.PgxIface, repos *repository.Repository, config utils.SeedConfig, log *zap.Logger) error {
	log = log.With(zap.String("component", "seed"))

	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	count, err := repos.Room.Count(ctx)
	if err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		log.Info("Store already seeded", zap.Int64("rooms", count))
		return nil
	}

	rooms := SampleRooms()
	for _, room := range rooms {
		if err := repos.Room.Create(ctx, room); err != nil {
			return fmt.Errorf("seed room %s: %w", room.Name, err)
		}
	}

	persons := SamplePersons()
	for _, person := range persons {
		if err := repos.Person.Create(ctx, person); err != nil {
			return fmt.Errorf("seed person %s: %w", person.Name, err)
		}
	}

	log.Info("Seeded fixed sample set",
		zap.Int("rooms", len(rooms)),
		zap.Int("persons", len(persons)),
	)

	if !config.DemoBookings {
		return nil
	}

	// Demo bookings pair room i with person i and session i on today+i,
	// mirroring the original sample data.
	now := time.Now()
	for i, person := range persons {
		pinHash, err := utils.HashPin(demoPins[i])
		if err != nil {
			return fmt.Errorf("hash demo pin: %w", err)
		}

		booking := &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			RoomID:   rooms[i].ID,
			PersonID: person.ID,
			Date:     entity.NormalizeDate(now.AddDate(0, 0, i)),
			Session:  entity.DefaultSessions[i],
			PinHash:  pinHash,
		}

		if err := repos.Booking.Create(ctx, booking); err != nil {
			return fmt.Errorf("seed demo booking %d: %w", i, err)
		}
	}

	log.Info("Seeded demo bookings", zap.Int("bookings", len(persons)))
	return nil
}
