package screen

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/admin"
	"github.com/screentime/screentime-api/internal/pkg/errorhandler"
	"github.com/screentime/screentime-api/internal/pkg/response"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Auditor records admin actions
type Auditor interface {
	LogAction(ctx context.Context, entry admin.AuditEntry)
}

// Handler handles screen HTTP requests
type Handler struct {
	service *Service
	auditor Auditor
}

// NewHandler creates screen handler
func NewHandler(service *Service, auditor Auditor) *Handler {
	return &Handler{
		service: service,
		auditor: auditor,
	}
}

// List handles GET /screens
// @Summary List screens
// @Description Returns every screen ordered by name.
// @Tags Screens
// @Produce json
// @Success 200 {object} response.Response{data=[]ScreenResponse}
// @Failure 500 {object} response.Response
// @Router /screens [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	screens, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.InternalError(r.Context(), w, "screen.list", err)
		return
	}

	items := make([]*ScreenResponse, len(screens))
	for i, s := range screens {
		items[i] = ToResponse(s)
	}

	response.OK(w, items)
}

// GetByID handles GET /screens/{id}
// @Summary Get screen
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} response.Response{data=ScreenResponse}
// @Failure 400,404,500 {object} response.Response
// @Router /screens/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid screen ID")
		return
	}

	screen, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "screen.get", err)
		return
	}

	response.OK(w, ToResponse(screen))
}

// Create handles POST /admin/screens
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ScreenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	screen, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "screen.create", err)
		return
	}

	h.auditor.LogAction(r.Context(), admin.AuditEntry{
		Action:     admin.ActionScreenCreate,
		EntityType: "screen",
		EntityID:   screen.ID,
		NewValue:   ToResponse(screen),
	})

	response.Created(w, ToResponse(screen))
}

// Update handles PUT /admin/screens/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid screen ID")
		return
	}

	var req ScreenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	old, updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, "screen.update", err)
		return
	}

	h.auditor.LogAction(r.Context(), admin.AuditEntry{
		Action:     admin.ActionScreenUpdate,
		EntityType: "screen",
		EntityID:   id,
		OldValue:   ToResponse(old),
		NewValue:   ToResponse(updated),
	})

	response.OK(w, ToResponse(updated))
}

// Delete handles DELETE /admin/screens/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid screen ID")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "screen.delete", err)
		return
	}

	h.auditor.LogAction(r.Context(), admin.AuditEntry{
		Action:     admin.ActionScreenDelete,
		EntityType: "screen",
		EntityID:   id,
		OldValue:   ToResponse(deleted),
	})

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var verrs validator.Errors
	switch {
	case errors.As(err, &verrs):
		errorhandler.LogValidationError(r.Context(), verrs)
		response.ValidationError(w, verrs)
	case errors.Is(err, ErrScreenNotFound):
		response.NotFound(w, "Screen not found")
	case errors.Is(err, ErrScreenNameTaken):
		response.Conflict(w, "A screen with this name already exists")
	case errors.Is(err, ErrScreenHasBookings):
		response.Conflict(w, "Cannot delete screen: it has existing bookings. Please delete them first.")
	default:
		errorhandler.InternalError(r.Context(), w, operation, err)
	}
}
