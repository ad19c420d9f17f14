package recommendation

import (
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
)

// Request describes a contended selection and the screens that may replace it
type Request struct {
	SelectedScreenID   uuid.UUID
	SelectedDate       time.Time
	SelectedTimeSlot   booking.TimeSlot
	DemandLevel        demand.Level
	CandidateScreenIDs []uuid.UUID
}

// Result carries suggestions exactly as the generator produced them. Slot
// labels and screen ids are not checked against live data here.
type Result struct {
	AlternativeTimeSlots        []string `json:"alternative_time_slots"`
	NearbyScreenRecommendations []string `json:"nearby_screen_recommendations"`
	Reasoning                   string   `json:"reasoning"`
}
