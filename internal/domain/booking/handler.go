package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

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

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
	auditor Auditor
}

// NewHandler creates booking handler
func NewHandler(service *Service, auditor Auditor) *Handler {
	return &Handler{
		service: service,
		auditor: auditor,
	}
}

// Create handles POST /bookings
// @Summary Book a time slot
// @Description Books a screen for one slot on one day. Past dates and Sundays are rejected.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking"
// @Success 201 {object} response.Response{data=BookingResponse}
// @Failure 400,404,422,500 {object} response.Response
// @Failure 409 {object} response.Response "Slot already booked"
// @Router /bookings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	b, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		var verrs validator.Errors
		switch {
		case errors.As(err, &verrs):
			errorhandler.LogValidationError(r.Context(), verrs)
			response.ValidationError(w, verrs)
		case errors.Is(err, ErrSlotTaken):
			response.Conflict(w, SlotTakenMessage)
		case errors.Is(err, ErrScreenNotFound):
			response.NotFound(w, "Screen not found")
		case errors.Is(err, ErrPastDate):
			response.ValidationError(w, map[string]string{"date": "Date must not be in the past"})
		case errors.Is(err, ErrClosedDay):
			response.ValidationError(w, map[string]string{"date": "Bookings are not available on Sundays"})
		default:
			errorhandler.InternalError(r.Context(), w, "booking.create", err)
		}
		return
	}

	response.Created(w, ToResponse(b))
}

// GetByID handles GET /bookings/{id}
// @Summary Get booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response{data=BookingResponse}
// @Failure 400,404,500 {object} response.Response
// @Router /bookings/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		errorhandler.InternalError(r.Context(), w, "booking.get", err)
		return
	}

	response.OK(w, DetailsToResponse(b))
}

// BookedSlots handles GET /screens/{id}/booked-slots?date=YYYY-MM-DD
// @Summary Booked slots for a day
// @Tags Bookings
// @Produce json
// @Param id path string true "Screen ID"
// @Param date query string true "Day, YYYY-MM-DD"
// @Success 200 {object} response.Response{data=BookedSlotsResponse}
// @Failure 400,422,500 {object} response.Response
// @Router /screens/{id}/booked-slots [get]
func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	screenID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid screen ID")
		return
	}

	date, err := ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.ValidationError(w, map[string]string{"date": "Invalid date, expected format YYYY-MM-DD"})
		return
	}

	slots, err := h.service.BookedSlots(r.Context(), screenID, date)
	if err != nil {
		errorhandler.InternalError(r.Context(), w, "booking.booked_slots", err)
		return
	}

	response.OK(w, &BookedSlotsResponse{
		ScreenID:    screenID,
		Date:        FormatDate(date),
		BookedSlots: slots,
	})
}

// TimeSlots handles GET /time-slots
// @Summary List time slots
// @Tags Bookings
// @Produce json
// @Success 200 {object} response.Response{data=[]TimeSlotResponse}
// @Router /time-slots [get]
func (h *Handler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	items := make([]TimeSlotResponse, len(timeSlots))
	for i, slot := range timeSlots {
		items[i] = TimeSlotResponse{Value: string(slot), Order: i}
	}
	response.OK(w, items)
}

// List handles GET /admin/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	if s := q.Get("screen_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(w, "Invalid screen ID")
			return
		}
		filter.ScreenID = &id
	}
	if d := q.Get("date"); d != "" {
		date, err := ParseDate(d)
		if err != nil {
			response.ValidationError(w, map[string]string{"date": "Invalid date, expected format YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	items, total, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		errorhandler.InternalError(r.Context(), w, "booking.list", err)
		return
	}

	resp := &BookingListResponse{
		Items:  make([]*BookingResponse, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, b := range items {
		resp.Items[i] = DetailsToResponse(b)
	}

	response.OK(w, resp)
}

// Delete handles DELETE /admin/bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	deleted, err := h.service.DeleteBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		errorhandler.InternalError(r.Context(), w, "booking.delete", err)
		return
	}

	h.auditor.LogAction(r.Context(), admin.AuditEntry{
		Action:     admin.ActionBookingDelete,
		EntityType: "booking",
		EntityID:   deleted.ID,
		OldValue:   DetailsToResponse(deleted),
	})

	response.NoContent(w)
}
