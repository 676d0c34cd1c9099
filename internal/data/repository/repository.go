package repository

import (
	"errors"

	"bookme/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	Room    RoomRepository
	Person  PersonRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Room:    NewRoomRepository(db, log),
		Person:  NewPersonRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. A duplicate (room, day, session) insert surfaces this way when
// two writers race past the availability check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
