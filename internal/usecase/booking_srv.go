package usecase

import (
	"context"
	"fmt"
	"time"

	"bookme/internal/data/entity"
	"bookme/internal/data/repository"
	"bookme/internal/dto/request"
	"bookme/internal/dto/response"
	"bookme/pkg/cache"
	"bookme/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type BookingService interface {
	// AvailableSessions reports per-session availability for a room on a
	// calendar day. excludeBookingID, when set, makes that booking's own
	// session read as available if the queried date equals its stored date
	// (the edit-form override).
	AvailableSessions(ctx context.Context, roomID, date, excludeBookingID string) (*response.AvailabilityResponse, error)

	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string, req *request.DeleteBookingRequest) error
}

type bookingService struct {
	repo  *repository.Repository
	cache *cache.AvailabilityCache
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, availabilityCache *cache.AvailabilityCache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		cache: availabilityCache,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) AvailableSessions(ctx context.Context, roomID, date, excludeBookingID string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid room ID %s", ErrValidation, roomID)
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, date)
	}
	day = entity.NormalizeDate(day)

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	// The plain per-day map is cacheable; the edit override is not, it
	// depends on the excluded booking.
	if excludeBookingID == "" {
		if availability, ok := s.cache.Get(ctx, room.ID, day); ok {
			return response.AvailabilityToResponse(room, date, availability), nil
		}
	}

	bookings, err := s.repo.Booking.FindByRoomAndDate(ctx, room.ID, day)
	if err != nil {
		return nil, fmt.Errorf("get bookings for room %s: %w", roomID, err)
	}

	availability := AvailableSessions(room, bookings, day)

	if excludeBookingID == "" {
		s.cache.Set(ctx, room.ID, day, availability)
		return response.AvailabilityToResponse(room, date, availability), nil
	}

	excludeID, err := uuid.Parse(excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, excludeBookingID)
	}

	excluded, err := s.repo.Booking.FindByID(ctx, excludeID)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", excludeBookingID, err)
	}
	if excluded != nil && excluded.RoomID == room.ID && entity.SameDay(excluded.Date, day) {
		availability[excluded.Session] = true
	}

	return response.AvailabilityToResponse(room, date, availability), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if !utils.IsValidPin(req.Pin) {
		return nil, fmt.Errorf("%w: pin must be exactly 4 digits", ErrValidation)
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid room ID %s", ErrValidation, req.RoomID)
	}

	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid person ID %s", ErrValidation, req.PersonID)
	}

	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, req.Date)
	}
	day = entity.NormalizeDate(day)

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", req.RoomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, req.RoomID)
	}

	if !room.HasSession(req.Session) {
		return nil, fmt.Errorf("%w: session %q is not a slot of room %s", ErrValidation, req.Session, room.Name)
	}

	person, err := s.repo.Person.FindByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", req.PersonID, err)
	}
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, req.PersonID)
	}

	// Advisory pre-check; the unique constraint is the hard guarantee.
	existing, err := s.repo.Booking.FindByRoomAndDate(ctx, room.ID, day)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !AvailableSessions(room, existing, day)[req.Session] {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, req.Session, req.Date)
	}

	pinHash, err := utils.HashPin(req.Pin)
	if err != nil {
		s.log.Error("Failed to hash pin", zap.Error(err))
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomID:   room.ID,
		PersonID: person.ID,
		Date:     day,
		Session:  req.Session,
		PinHash:  pinHash,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, req.Session, req.Date)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.String("session", req.Session),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.cache.Invalidate(ctx, room.ID, day)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room", room.Name),
		zap.String("person", person.Name),
		zap.String("date", req.Date),
		zap.String("session", req.Session),
	)

	resp := response.BookingToResponse(booking, room.Name, person.Name)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.Search(ctx, search, limit, offset)
	if err != nil {
		s.log.Error("Failed to search bookings",
			zap.Error(err),
			zap.String("search", search),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("search bookings: %w", err)
	}

	total, err := s.repo.Booking.CountSearch(ctx, search)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = s.buildBookingResponse(ctx, booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPin(booking.PinHash, req.Pin) {
		s.log.Warn("Booking update rejected, pin mismatch", zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("%w: booking %s", ErrPinMismatch, bookingID)
	}

	room, err := s.repo.Room.FindByID(ctx, booking.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", booking.RoomID.String(), err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, booking.RoomID.String())
	}

	previousDate := booking.Date
	previousPersonID := booking.PersonID

	targetDate := booking.Date
	if req.Date != nil {
		day, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, *req.Date)
		}
		targetDate = entity.NormalizeDate(day)
	}

	targetSession := booking.Session
	if req.Session != nil {
		if !room.HasSession(*req.Session) {
			return nil, fmt.Errorf("%w: session %q is not a slot of room %s", ErrValidation, *req.Session, room.Name)
		}
		targetSession = *req.Session
	}

	person, err := s.repo.Person.FindByID(ctx, booking.PersonID)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", booking.PersonID.String(), err)
	}
	if req.PersonID != nil {
		personID, err := uuid.Parse(*req.PersonID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid person ID %s", ErrValidation, *req.PersonID)
		}
		person, err = s.repo.Person.FindByID(ctx, personID)
		if err != nil {
			return nil, fmt.Errorf("get person %s: %w", *req.PersonID, err)
		}
		if person == nil {
			return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, *req.PersonID)
		}
	}
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, booking.PersonID.String())
	}

	// The target slot must be free, except that the booking's own current
	// slot counts as available when the date is unchanged.
	existing, err := s.repo.Booking.FindByRoomAndDate(ctx, room.ID, targetDate)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	availability := AvailableSessions(room, existing, targetDate)
	if entity.SameDay(targetDate, booking.Date) {
		availability[booking.Session] = true
	}
	if !availability[targetSession] {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, targetSession, targetDate.Format(dateLayout))
	}

	booking.Date = targetDate
	booking.Session = targetSession
	booking.PersonID = person.ID
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking, previousPersonID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, targetSession, targetDate.Format(dateLayout))
		}
		s.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}

	s.cache.Invalidate(ctx, room.ID, previousDate, targetDate)

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("room", room.Name),
		zap.String("person", person.Name),
		zap.String("date", targetDate.Format(dateLayout)),
		zap.String("session", targetSession),
	)

	resp := response.BookingToResponse(booking, room.Name, person.Name)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string, req *request.DeleteBookingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Delete booking validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !utils.CheckPin(booking.PinHash, req.Pin) {
		s.log.Warn("Booking delete rejected, pin mismatch", zap.String("booking_id", bookingID))
		return fmt.Errorf("%w: booking %s", ErrPinMismatch, bookingID)
	}

	if err := s.repo.Booking.Delete(ctx, booking); err != nil {
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}

	s.cache.Invalidate(ctx, booking.RoomID, booking.Date)

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("room_id", booking.RoomID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}

	return booking, nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	var roomName, personName string

	room, _ := s.repo.Room.FindByID(ctx, booking.RoomID)
	if room != nil {
		roomName = room.Name
	}

	person, _ := s.repo.Person.FindByID(ctx, booking.PersonID)
	if person != nil {
		personName = person.Name
	}

	return response.BookingToResponse(booking, roomName, personName)
}
