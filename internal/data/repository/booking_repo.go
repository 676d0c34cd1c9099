package repository

import (
	"context"
	"fmt"
	"time"

	"bookme/internal/data/entity"
	"bookme/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	// Search matches the query against room name or person name,
	// case-insensitive, newest bookings first. Empty query returns all.
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Booking, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	Update(ctx context.Context, booking *entity.Booking, previousPersonID uuid.UUID) error
	Delete(ctx context.Context, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, room_id, person_id, booking_date, session, pin_hash, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.PersonID,
		&booking.Date,
		&booking.Session,
		&booking.PinHash,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts the booking and increments the person's booking counter in
// one transaction, so a failed commit leaves no speculative state behind.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO bookings (id, room_id, person_id, booking_date, session, pin_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insert,
		booking.ID,
		booking.RoomID,
		booking.PersonID,
		booking.Date,
		booking.Session,
		booking.PinHash,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("room_id", booking.RoomID.String()),
			zap.String("session", booking.Session),
		)
		return fmt.Errorf("insert booking: %w", err)
	}

	counter := `UPDATE persons SET total_booked = total_booked + 1, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(ctx, counter, booking.PersonID); err != nil {
		r.log.Error("Failed to increment person booking counter",
			zap.Error(err),
			zap.String("person_id", booking.PersonID.String()),
		)
		return fmt.Errorf("increment booking counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND booking_date = $2
		ORDER BY session
	`

	rows, err := r.db.Query(ctx, query, roomID, entity.NormalizeDate(date))
	if err != nil {
		r.log.Error("Failed to find bookings by room and date",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find bookings for room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Search(ctx context.Context, search string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.room_id, b.person_id, b.booking_date, b.session, b.pin_hash, b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN persons p ON p.id = b.person_id
		WHERE $1 = '' OR r.name ILIKE '%' || $1 || '%' OR p.name ILIKE '%' || $1 || '%'
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to search bookings",
			zap.Error(err),
			zap.String("search", search),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("search bookings %q: %w", search, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountSearch(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN persons p ON p.id = b.person_id
		WHERE $1 = '' OR r.name ILIKE '%' || $1 || '%' OR p.name ILIKE '%' || $1 || '%'
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String("search", search),
		)
		return 0, fmt.Errorf("count bookings %q: %w", search, err)
	}

	return count, nil
}

// Update rewrites the booking's mutable fields. When the booking was
// reassigned to a different person, the counter moves between the two
// persons inside the same transaction.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking, previousPersonID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE bookings
		SET person_id = $2, booking_date = $3, session = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, update,
		booking.ID,
		booking.PersonID,
		booking.Date,
		booking.Session,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	if booking.PersonID != previousPersonID {
		decrement := `UPDATE persons SET total_booked = total_booked - 1, updated_at = NOW() WHERE id = $1`
		if _, err := tx.Exec(ctx, decrement, previousPersonID); err != nil {
			return fmt.Errorf("move booking counter from person %s: %w", previousPersonID.String(), err)
		}

		increment := `UPDATE persons SET total_booked = total_booked + 1, updated_at = NOW() WHERE id = $1`
		if _, err := tx.Exec(ctx, increment, booking.PersonID); err != nil {
			return fmt.Errorf("move booking counter to person %s: %w", booking.PersonID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update booking: %w", err)
	}

	return nil
}

// Delete removes the booking and decrements the person's counter in one
// transaction. Back-reference lists are query-derived, so removal cannot
// leave dangling references.
func (r *bookingRepository) Delete(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete booking: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, booking.ID)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("delete booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	counter := `UPDATE persons SET total_booked = total_booked - 1, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(ctx, counter, booking.PersonID); err != nil {
		return fmt.Errorf("decrement booking counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete booking: %w", err)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", booking.ID.String()))
	return nil
}
