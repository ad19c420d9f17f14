// Package availability answers "can I book this?" for a screen, day and slot,
// combining the demand classifier with recommendations when the slot is contended.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
	"github.com/screentime/screentime-api/internal/domain/recommendation"
	"github.com/screentime/screentime-api/internal/domain/screen"
	"github.com/screentime/screentime-api/internal/pkg/logger"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Screens lists the known screens
type Screens interface {
	List(ctx context.Context) ([]*screen.Screen, error)
}

// Classifier classifies demand for a selection
type Classifier interface {
	Classify(ctx context.Context, screenID uuid.UUID, date time.Time, slot booking.TimeSlot) demand.Info
}

// Recommender produces alternatives for contended selections
type Recommender interface {
	Request(ctx context.Context, req recommendation.Request) (*recommendation.Result, error)
}

// SlotReader reads the slots already booked on a screen for a day
type SlotReader interface {
	BookedSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]booking.TimeSlot, error)
}

// Service orchestrates availability checks
type Service struct {
	screens     Screens
	classifier  Classifier
	recommender Recommender
	slots       SlotReader
}

// NewService creates availability service
func NewService(screens Screens, classifier Classifier, recommender Recommender, slots SlotReader) *Service {
	return &Service{
		screens:     screens,
		classifier:  classifier,
		recommender: recommender,
		slots:       slots,
	}
}

// Check classifies the selection and, for medium or high demand, asks for
// recommendations. Storage and recommender failures never fail the check; the
// result is flagged with BookedSlotsUnavailable or RecommendationsUnavailable.
func (s *Service) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	screenID, _ := uuid.Parse(req.ScreenID)
	date, _ := booking.ParseDate(req.Date)
	slot := booking.TimeSlot(req.TimeSlot)

	screens, err := s.screens.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}

	var (
		found      bool
		candidates []uuid.UUID
		byID       = make(map[uuid.UUID]*screen.Screen, len(screens))
	)
	for _, sc := range screens {
		byID[sc.ID] = sc
		if sc.ID == screenID {
			found = true
			continue
		}
		candidates = append(candidates, sc.ID)
	}
	if !found {
		return nil, ErrScreenNotFound
	}

	bookedUnavailable := false
	booked, err := s.slots.BookedSlots(ctx, screenID, date)
	if err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("screen_id", screenID.String()).
			Msg("Booked slots unavailable, continuing without them")
		bookedUnavailable = true
		booked = nil
	}
	if booked == nil {
		booked = []booking.TimeSlot{}
	}

	info := s.classifier.Classify(ctx, screenID, date, slot)

	result := &CheckResult{
		ScreenID:               screenID,
		Date:                   booking.FormatDate(date),
		TimeSlot:               slot,
		Available:              !containsSlot(booked, slot),
		BookedSlots:            booked,
		BookedSlotsUnavailable: bookedUnavailable,
		Demand:                 info,
	}
	if bookedUnavailable {
		// commit still re-checks the slot
		result.Available = info.Level != demand.LevelHigh
	}

	if !info.IsContended() {
		return result, nil
	}

	suggestions, err := s.recommender.Request(ctx, recommendation.Request{
		SelectedScreenID:   screenID,
		SelectedDate:       date,
		SelectedTimeSlot:   slot,
		DemandLevel:        info.Level,
		CandidateScreenIDs: candidates,
	})
	if err != nil {
		if !errors.Is(err, recommendation.ErrNotContended) {
			logger.FromContext(ctx).Warn().
				Err(err).
				Str("screen_id", screenID.String()).
				Str("demand", string(info.Level)).
				Msg("Recommendations unavailable, continuing without them")
			result.RecommendationsUnavailable = true
		}
		return result, nil
	}

	result.Recommendations = sanitize(suggestions, screenID, slot, booked, byID)
	return result, nil
}

// sanitize keeps only known slots and screens that differ from the selection.
// Slots already booked on the selected screen are dropped too.
func sanitize(res *recommendation.Result, selectedScreen uuid.UUID, selectedSlot booking.TimeSlot, booked []booking.TimeSlot, screens map[uuid.UUID]*screen.Screen) *Recommendations {
	out := &Recommendations{
		AlternativeTimeSlots: []booking.TimeSlot{},
		NearbyScreens:        []ScreenSuggestion{},
		Reasoning:            res.Reasoning,
	}

	seenSlots := map[booking.TimeSlot]bool{}
	for _, raw := range res.AlternativeTimeSlots {
		slot := booking.TimeSlot(raw)
		if !slot.IsValid() || slot == selectedSlot || containsSlot(booked, slot) || seenSlots[slot] {
			continue
		}
		seenSlots[slot] = true
		out.AlternativeTimeSlots = append(out.AlternativeTimeSlots, slot)
	}

	seenScreens := map[uuid.UUID]bool{}
	for _, raw := range res.NearbyScreenRecommendations {
		id, err := uuid.Parse(raw)
		if err != nil || id == selectedScreen || seenScreens[id] {
			continue
		}
		sc, ok := screens[id]
		if !ok {
			continue
		}
		seenScreens[id] = true
		out.NearbyScreens = append(out.NearbyScreens, ScreenSuggestion{
			ID:       sc.ID,
			Name:     sc.Name,
			Location: sc.Location,
		})
	}

	return out
}

func containsSlot(slots []booking.TimeSlot, slot booking.TimeSlot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
