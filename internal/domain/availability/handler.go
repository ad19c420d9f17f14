package availability

import (
	"errors"
	"net/http"

	"github.com/screentime/screentime-api/internal/pkg/errorhandler"
	"github.com/screentime/screentime-api/internal/pkg/response"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Handler handles availability HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates availability handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Check handles POST /availability/check
// @Summary Check availability
// @Description Classifies demand for a selection and suggests alternatives when it is contended.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body CheckRequest true "Selection"
// @Success 200 {object} response.Response{data=CheckResult}
// @Failure 400,404,422,500 {object} response.Response
// @Router /availability/check [post]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := h.service.Check(r.Context(), &req)
	if err != nil {
		var verrs validator.Errors
		switch {
		case errors.As(err, &verrs):
			errorhandler.LogValidationError(r.Context(), verrs)
			response.ValidationError(w, verrs)
		case errors.Is(err, ErrScreenNotFound):
			response.NotFound(w, "Screen not found")
		default:
			errorhandler.InternalError(r.Context(), w, "availability.check", err)
		}
		return
	}

	response.OK(w, result)
}
