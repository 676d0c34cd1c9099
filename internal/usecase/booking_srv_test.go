package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bookme/internal/data/entity"
	"bookme/internal/data/repository"
	"bookme/internal/dto/request"
	"bookme/pkg/cache"
	"bookme/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Mock repositories for testing

type mockRoomRepository struct {
	createFunc     func(ctx context.Context, room *entity.Room) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	findByNameFunc func(ctx context.Context, name string) (*entity.Room, error)
	findAllFunc    func(ctx context.Context) ([]*entity.Room, error)
	countFunc      func(ctx context.Context) (int64, error)
}

func (m *mockRoomRepository) Create(ctx context.Context, room *entity.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRoomRepository) FindByName(ctx context.Context, name string) (*entity.Room, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockRoomRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockPersonRepository struct {
	createFunc   func(ctx context.Context, person *entity.Person) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.Person, error)
	searchFunc   func(ctx context.Context, query string) ([]*entity.Person, error)
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockPersonRepository) Create(ctx context.Context, person *entity.Person) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, person)
	}
	return nil
}

func (m *mockPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPersonRepository) Search(ctx context.Context, query string) ([]*entity.Person, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockPersonRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockBookingRepository struct {
	createFunc            func(ctx context.Context, booking *entity.Booking) error
	findByIDFunc          func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByRoomAndDateFunc func(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	searchFunc            func(ctx context.Context, query string, limit, offset int) ([]*entity.Booking, error)
	countSearchFunc       func(ctx context.Context, query string) (int64, error)
	updateFunc            func(ctx context.Context, booking *entity.Booking, previousPersonID uuid.UUID) error
	deleteFunc            func(ctx context.Context, booking *entity.Booking) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	if m.findByRoomAndDateFunc != nil {
		return m.findByRoomAndDateFunc(ctx, roomID, date)
	}
	return nil, nil
}

func (m *mockBookingRepository) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Booking, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) CountSearch(ctx context.Context, query string) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, query)
	}
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, booking *entity.Booking, previousPersonID uuid.UUID) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, booking, previousPersonID)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, booking *entity.Booking) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, booking)
	}
	return nil
}

func newTestService(rooms *mockRoomRepository, persons *mockPersonRepository, bookings *mockBookingRepository) BookingService {
	repo := &repository.Repository{
		Room:    rooms,
		Person:  persons,
		Booking: bookings,
	}
	noopCache := cache.NewAvailabilityCache(utils.RedisConfig{Enabled: false}, zap.NewNop())
	return NewBookingService(repo, noopCache, zap.NewNop())
}

func roomByID(room *entity.Room) *mockRoomRepository {
	return &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
			if id == room.ID {
				return room, nil
			}
			return nil, nil
		},
	}
}

func personByID(person *entity.Person) *mockPersonRepository {
	return &mockPersonRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
			if id == person.ID {
				return person, nil
			}
			return nil, nil
		},
	}
}

func TestCreateBookingInvalidPin(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}

	createCalled := false
	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *entity.Booking) error {
			createCalled = true
			return nil
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: person.ID.String(),
		Date:     "2025-04-10",
		Session:  "08:45 - 09:55",
		Pin:      "12b4",
	})

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if createCalled {
		t.Error("no booking may be persisted when the pin is invalid")
	}
}

func TestCreateBookingMissingPerson(t *testing.T) {
	room := testRoom("Collab Room 1")

	service := newTestService(roomByID(room), &mockPersonRepository{}, &mockBookingRepository{})

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: "",
		Date:     "2025-04-10",
		Session:  "08:45 - 09:55",
		Pin:      "1234",
	})

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestCreateBookingUnknownSession(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}

	service := newTestService(roomByID(room), personByID(person), &mockBookingRepository{})

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: person.ID.String(),
		Date:     "2025-04-10",
		Session:  "23:00 - 23:59",
		Pin:      "1234",
	})

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	bookings := &mockBookingRepository{
		findByRoomAndDateFunc: func(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*entity.Booking, error) {
			return []*entity.Booking{testBooking(room, date, "08:45 - 09:55")}, nil
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: person.ID.String(),
		Date:     "2025-04-10",
		Session:  "08:45 - 09:55",
		Pin:      "1234",
	})

	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("got %v, want ErrSlotUnavailable", err)
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}

	var created *entity.Booking
	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *entity.Booking) error {
			created = booking
			return nil
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	resp, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: person.ID.String(),
		Date:     "2025-04-10",
		Session:  "08:45 - 09:55",
		Pin:      "1234",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("booking was not persisted")
	}
	if created.PinHash == "1234" {
		t.Error("pin must not be stored in plaintext")
	}
	if !utils.CheckPin(created.PinHash, "1234") {
		t.Error("stored hash does not verify against the original pin")
	}
	if !created.Date.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date not normalized: %v", created.Date)
	}
	if resp.RoomName != "Collab Room 1" || resp.PersonName != "Budiono" {
		t.Errorf("response names not resolved: %q / %q", resp.RoomName, resp.PersonName)
	}
}

func TestCreateBookingUniqueViolation(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}

	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *entity.Booking) error {
			return fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: "23505"})
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:   room.ID.String(),
		PersonID: person.ID.String(),
		Date:     "2025-04-10",
		Session:  "08:45 - 09:55",
		Pin:      "1234",
	})

	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("a racing duplicate insert must map to ErrSlotUnavailable, got %v", err)
	}
}

func TestDeleteBookingWrongPin(t *testing.T) {
	room := testRoom("Collab Room 1")
	pinHash, _ := utils.HashPin("1234")
	booking := testBooking(room, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "08:45 - 09:55")
	booking.PinHash = pinHash

	deleteCalled := false
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		deleteFunc: func(ctx context.Context, b *entity.Booking) error {
			deleteCalled = true
			return nil
		},
	}

	service := newTestService(roomByID(room), &mockPersonRepository{}, bookings)

	err := service.DeleteBooking(context.Background(), booking.ID.String(), &request.DeleteBookingRequest{Pin: "9999"})

	if !errors.Is(err, ErrPinMismatch) {
		t.Fatalf("got %v, want ErrPinMismatch", err)
	}
	if deleteCalled {
		t.Error("booking must remain in store on pin mismatch")
	}
}

func TestDeleteBookingSuccess(t *testing.T) {
	room := testRoom("Collab Room 1")
	pinHash, _ := utils.HashPin("1234")
	booking := testBooking(room, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "08:45 - 09:55")
	booking.PinHash = pinHash

	deleteCalled := false
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		deleteFunc: func(ctx context.Context, b *entity.Booking) error {
			deleteCalled = true
			return nil
		},
	}

	service := newTestService(roomByID(room), &mockPersonRepository{}, bookings)

	if err := service.DeleteBooking(context.Background(), booking.ID.String(), &request.DeleteBookingRequest{Pin: "1234"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleteCalled {
		t.Error("delete was not invoked")
	}
}

func TestUpdateBookingKeepsOwnSlot(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}
	pinHash, _ := utils.HashPin("1234")

	booking := testBooking(room, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "08:45 - 09:55")
	booking.PersonID = person.ID
	booking.PinHash = pinHash

	updateCalled := false
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		findByRoomAndDateFunc: func(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*entity.Booking, error) {
			// The booking itself occupies the slot being kept.
			return []*entity.Booking{booking}, nil
		},
		updateFunc: func(ctx context.Context, b *entity.Booking, previousPersonID uuid.UUID) error {
			updateCalled = true
			return nil
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	sameDate := "2025-04-10"
	sameSession := "08:45 - 09:55"
	_, err := service.UpdateBooking(context.Background(), booking.ID.String(), &request.UpdateBookingRequest{
		Pin:     "1234",
		Date:    &sameDate,
		Session: &sameSession,
	})

	if err != nil {
		t.Fatalf("keeping the current slot must succeed, got %v", err)
	}
	if !updateCalled {
		t.Error("update was not invoked")
	}
}

func TestUpdateBookingWrongPin(t *testing.T) {
	room := testRoom("Collab Room 1")
	pinHash, _ := utils.HashPin("1234")
	booking := testBooking(room, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "08:45 - 09:55")
	booking.PinHash = pinHash

	updateCalled := false
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		updateFunc: func(ctx context.Context, b *entity.Booking, previousPersonID uuid.UUID) error {
			updateCalled = true
			return nil
		},
	}

	service := newTestService(roomByID(room), &mockPersonRepository{}, bookings)

	_, err := service.UpdateBooking(context.Background(), booking.ID.String(), &request.UpdateBookingRequest{Pin: "0000"})

	if !errors.Is(err, ErrPinMismatch) {
		t.Fatalf("got %v, want ErrPinMismatch", err)
	}
	if updateCalled {
		t.Error("no mutation may happen on pin mismatch")
	}
}

func TestUpdateBookingToTakenSlot(t *testing.T) {
	room := testRoom("Collab Room 1")
	person := &entity.Person{Base: entity.Base{ID: uuid.New()}, Name: "Budiono"}
	pinHash, _ := utils.HashPin("1234")

	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	booking := testBooking(room, date, "08:45 - 09:55")
	booking.PersonID = person.ID
	booking.PinHash = pinHash
	other := testBooking(room, date, "10:10 - 11:20")

	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		findByRoomAndDateFunc: func(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*entity.Booking, error) {
			return []*entity.Booking{booking, other}, nil
		},
	}

	service := newTestService(roomByID(room), personByID(person), bookings)

	takenSession := "10:10 - 11:20"
	_, err := service.UpdateBooking(context.Background(), booking.ID.String(), &request.UpdateBookingRequest{
		Pin:     "1234",
		Session: &takenSession,
	})

	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("got %v, want ErrSlotUnavailable", err)
	}
}

func TestAvailableSessionsExcludeBooking(t *testing.T) {
	room := testRoom("Collab Room 1")
	booking := testBooking(room, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "08:45 - 09:55")

	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			if id == booking.ID {
				return booking, nil
			}
			return nil, nil
		},
		findByRoomAndDateFunc: func(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*entity.Booking, error) {
			return []*entity.Booking{booking}, nil
		},
	}

	service := newTestService(roomByID(room), &mockPersonRepository{}, bookings)

	resp, err := service.AvailableSessions(context.Background(), room.ID.String(), "2025-04-10", booking.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, session := range resp.Sessions {
		if session.Session == "08:45 - 09:55" && !session.IsAvailable {
			t.Error("excluded booking's own session must read as available")
		}
	}

	// Without the exclusion the slot reads as taken.
	resp, err = service.AvailableSessions(context.Background(), room.ID.String(), "2025-04-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, session := range resp.Sessions {
		if session.Session == "08:45 - 09:55" && session.IsAvailable {
			t.Error("booked session must read as unavailable without exclusion")
		}
	}
}

func TestAvailableSessionsUnknownRoom(t *testing.T) {
	service := newTestService(&mockRoomRepository{}, &mockPersonRepository{}, &mockBookingRepository{})

	_, err := service.AvailableSessions(context.Background(), uuid.NewString(), "2025-04-10", "")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("got %v, want ErrRoomNotFound", err)
	}
}
