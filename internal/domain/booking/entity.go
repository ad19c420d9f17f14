package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// TimeSlot is one of the fixed bookable periods of a day
type TimeSlot string

const (
	Slot4thPeriod TimeSlot = "4th period class"
	Slot5thPeriod TimeSlot = "5th period class"
	Slot7thPeriod TimeSlot = "7th period class"
)

// timeSlots in display order
var timeSlots = []TimeSlot{Slot4thPeriod, Slot5thPeriod, Slot7thPeriod}

func init() {
	validator.RegisterEnum("time_slot", TimeSlotStrings())
}

// TimeSlots returns all slots in display order
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// TimeSlotStrings returns slot labels in display order
func TimeSlotStrings() []string {
	out := make([]string, len(timeSlots))
	for i, s := range timeSlots {
		out[i] = string(s)
	}
	return out
}

// IsValid reports whether s belongs to the enumeration
func (s TimeSlot) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the display position of s, or -1 when unknown
func (s TimeSlot) Index() int {
	for i, slot := range timeSlots {
		if slot == s {
			return i
		}
	}
	return -1
}

// Booking is a reservation of one time slot on one screen for one day
type Booking struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ScreenID    uuid.UUID `db:"screen_id" json:"screen_id"`
	Date        time.Time `db:"date" json:"date"`
	TimeSlot    TimeSlot  `db:"time_slot" json:"time_slot"`
	UserName    string    `db:"user_name" json:"user_name"`
	UserContact string    `db:"user_contact" json:"user_contact"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BookingDetails is a booking joined with its screen
type BookingDetails struct {
	Booking
	ScreenName     string `db:"screen_name" json:"screen_name"`
	ScreenLocation string `db:"screen_location" json:"screen_location"`
}
