package wire

import (
	"bookme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePerson(r chi.Router, personHandler *adaptor.PersonHandler) {
	// GET /api/persons - List persons, filterable by name substring
	r.Get("/api/persons", personHandler.GetPersons)
}
