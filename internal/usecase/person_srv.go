package usecase

import (
	"context"
	"fmt"

	"bookme/internal/data/repository"
	"bookme/internal/dto/response"

	"go.uber.org/zap"
)

type PersonService interface {
	// GetPersons returns persons whose name contains the search term
	// (case-insensitive), sorted alphabetically. Empty term returns all.
	GetPersons(ctx context.Context, search string) ([]response.PersonResponse, error)
}

type personService struct {
	repo repository.PersonRepository
	log  *zap.Logger
}

func NewPersonService(repo repository.PersonRepository, log *zap.Logger) PersonService {
	return &personService{
		repo: repo,
		log:  log.With(zap.String("service", "person")),
	}
}

func (s *personService) GetPersons(ctx context.Context, search string) ([]response.PersonResponse, error) {
	persons, err := s.repo.Search(ctx, search)
	if err != nil {
		s.log.Error("Failed to search persons", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("search persons: %w", err)
	}

	personResponses := make([]response.PersonResponse, len(persons))
	for i, person := range persons {
		personResponses[i] = response.PersonToResponse(person)
	}

	return personResponses, nil
}
