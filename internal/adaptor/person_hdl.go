package adaptor

import (
	"net/http"

	"bookme/internal/usecase"
	"bookme/pkg/utils"

	"go.uber.org/zap"
)

type PersonHandler struct {
	service usecase.PersonService
	log     *zap.Logger
}

func NewPersonHandler(service usecase.PersonService, log *zap.Logger) *PersonHandler {
	return &PersonHandler{
		service: service,
		log:     log.With(zap.String("handler", "person")),
	}
}

// GetPersons handles GET /api/persons?search=name
func (h *PersonHandler) GetPersons(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	persons, err := h.service.GetPersons(r.Context(), search)
	if err != nil {
		handleServiceError(w, h.log, err, "get persons")
		return
	}

	utils.ResponseSuccess(w, "success", persons)
}
