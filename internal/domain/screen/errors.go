package screen

import "errors"

var (
	ErrScreenNotFound    = errors.New("screen not found")
	ErrScreenNameTaken   = errors.New("screen with this name already exists")
	ErrScreenHasBookings = errors.New("screen has existing bookings")
)
