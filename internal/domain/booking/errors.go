package booking

import "errors"

var (
	ErrSlotTaken       = errors.New("this time slot is already booked")
	ErrBookingNotFound = errors.New("booking not found")
	ErrScreenNotFound  = errors.New("screen not found")
	ErrPastDate        = errors.New("date is in the past")
	ErrClosedDay       = errors.New("bookings are not taken on sundays")
)

// SlotTakenMessage is shown to users when a slot is already booked
const SlotTakenMessage = "This time slot is already booked. Please select another."
