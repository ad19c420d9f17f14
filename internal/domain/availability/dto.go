package availability

import (
	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
)

// CheckRequest for POST /availability/check
type CheckRequest struct {
	ScreenID string `json:"screen_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,time_slot"`
}

// CheckResult describes a selection's availability and, when contended, the
// alternatives worth offering instead.
type CheckResult struct {
	ScreenID                   uuid.UUID          `json:"screen_id"`
	Date                       string             `json:"date"`
	TimeSlot                   booking.TimeSlot   `json:"time_slot"`
	Available                  bool               `json:"available"`
	BookedSlots                []booking.TimeSlot `json:"booked_slots"`
	BookedSlotsUnavailable     bool               `json:"booked_slots_unavailable,omitempty"`
	Demand                     demand.Info        `json:"demand"`
	Recommendations            *Recommendations   `json:"recommendations,omitempty"`
	RecommendationsUnavailable bool               `json:"recommendations_unavailable"`
}

// Recommendations are generator suggestions checked against live data
type Recommendations struct {
	AlternativeTimeSlots []booking.TimeSlot `json:"alternative_time_slots"`
	NearbyScreens        []ScreenSuggestion `json:"nearby_screens"`
	Reasoning            string             `json:"reasoning"`
}

// ScreenSuggestion is a recommended screen with enough detail to display it
type ScreenSuggestion struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}
