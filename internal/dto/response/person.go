package response

import (
	"bookme/internal/data/entity"
)

type PersonResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalBooked int    `json:"total_booked"`
}

func PersonToResponse(person *entity.Person) PersonResponse {
	return PersonResponse{
		ID:          person.ID.String(),
		Name:        person.Name,
		TotalBooked: person.TotalBooked,
	}
}
