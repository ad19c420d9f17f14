package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest for POST /bookings
type CreateBookingRequest struct {
	ScreenID    string `json:"screen_id" validate:"required,uuid"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string `json:"time_slot" validate:"required,time_slot"`
	UserName    string `json:"user_name" validate:"required,notblank,min=2,max=100"`
	UserContact string `json:"user_contact" validate:"required,notblank,min=7,max=20"`
}

// BookingResponse represents a booking in API
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	ScreenID       uuid.UUID `json:"screen_id"`
	ScreenName     string    `json:"screen_name,omitempty"`
	ScreenLocation string    `json:"screen_location,omitempty"`
	Date           string    `json:"date"`
	TimeSlot       TimeSlot  `json:"time_slot"`
	UserName       string    `json:"user_name"`
	UserContact    string    `json:"user_contact"`
	CreatedAt      string    `json:"created_at"`
}

// ToResponse converts entity to response
func ToResponse(b *Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		ScreenID:    b.ScreenID,
		Date:        FormatDate(b.Date),
		TimeSlot:    b.TimeSlot,
		UserName:    b.UserName,
		UserContact: b.UserContact,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// DetailsToResponse converts a joined booking to response
func DetailsToResponse(b *BookingDetails) *BookingResponse {
	resp := ToResponse(&b.Booking)
	resp.ScreenName = b.ScreenName
	resp.ScreenLocation = b.ScreenLocation
	return resp
}

// BookingListResponse for GET /admin/bookings
type BookingListResponse struct {
	Items  []*BookingResponse `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// BookedSlotsResponse for GET /screens/{id}/booked-slots
type BookedSlotsResponse struct {
	ScreenID    uuid.UUID  `json:"screen_id"`
	Date        string     `json:"date"`
	BookedSlots []TimeSlot `json:"booked_slots"`
}

// TimeSlotResponse for GET /time-slots
type TimeSlotResponse struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}
