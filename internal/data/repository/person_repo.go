package repository

import (
	"context"
	"fmt"

	"bookme/internal/data/entity"
	"bookme/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Person, error)
	// Search returns persons whose name contains the query
	// (case-insensitive), sorted alphabetically. Empty query returns all.
	Search(ctx context.Context, query string) ([]*entity.Person, error)
	Count(ctx context.Context) (int64, error)
}

type personRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPersonRepository(db database.PgxIface, log *zap.Logger) PersonRepository {
	return &personRepository{
		db:  db,
		log: log.With(zap.String("repository", "person")),
	}
}

func (r *personRepository) Create(ctx context.Context, person *entity.Person) error {
	query := `
		INSERT INTO persons (id, name, total_booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		person.ID,
		person.Name,
		person.TotalBooked,
		person.CreatedAt,
		person.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create person",
			zap.Error(err),
			zap.String("name", person.Name),
		)
		return fmt.Errorf("create person %s: %w", person.Name, err)
	}

	return nil
}

func (r *personRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	query := `
		SELECT id, name, total_booked, created_at, updated_at
		FROM persons
		WHERE id = $1
	`

	var person entity.Person
	err := r.db.QueryRow(ctx, query, id).Scan(
		&person.ID,
		&person.Name,
		&person.TotalBooked,
		&person.CreatedAt,
		&person.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find person by ID",
			zap.Error(err),
			zap.String("person_id", id.String()),
		)
		return nil, fmt.Errorf("find person by ID %s: %w", id.String(), err)
	}

	return &person, nil
}

func (r *personRepository) Search(ctx context.Context, search string) ([]*entity.Person, error) {
	query := `
		SELECT id, name, total_booked, created_at, updated_at
		FROM persons
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		r.log.Error("Failed to search persons",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("search persons %q: %w", search, err)
	}
	defer rows.Close()

	var persons []*entity.Person
	for rows.Next() {
		var person entity.Person
		err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.TotalBooked,
			&person.CreatedAt,
			&person.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan person row", zap.Error(err))
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		persons = append(persons, &person)
	}

	return persons, nil
}

func (r *personRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM persons`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count persons", zap.Error(err))
		return 0, fmt.Errorf("count persons: %w", err)
	}

	return count, nil
}
