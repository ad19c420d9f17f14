package recommendation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
)

// maxAlternativeSlots caps how many slots the rules generator offers
const maxAlternativeSlots = 2

// BookingReader is the booking data the rules generator looks at
type BookingReader interface {
	BookedSlots(ctx context.Context, screenID uuid.UUID, start, end time.Time) ([]booking.TimeSlot, error)
	CountByScreenOnDay(ctx context.Context, start, end time.Time) (map[uuid.UUID]int, error)
}

// RulesGenerator suggests free slots on the same screen, nearest first in
// display order, and candidate screens with no bookings that day.
type RulesGenerator struct {
	bookings BookingReader
}

// NewRulesGenerator creates a rules generator
func NewRulesGenerator(bookings BookingReader) *RulesGenerator {
	return &RulesGenerator{bookings: bookings}
}

// Name identifies the generator in metrics and cache keys
func (g *RulesGenerator) Name() string { return "rules" }

// Generate implements Generator
func (g *RulesGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	start, end := booking.DayBounds(req.SelectedDate)

	booked, err := g.bookings.BookedSlots(ctx, req.SelectedScreenID, start, end)
	if err != nil {
		return nil, fmt.Errorf("read booked slots: %w", err)
	}
	counts, err := g.bookings.CountByScreenOnDay(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("read screen counts: %w", err)
	}

	slots := nearestFreeSlots(req.SelectedTimeSlot, booked, maxAlternativeSlots)

	screens := make([]string, 0, len(req.CandidateScreenIDs))
	for _, id := range req.CandidateScreenIDs {
		if id == req.SelectedScreenID {
			continue
		}
		if counts[id] == 0 {
			screens = append(screens, id.String())
		}
	}

	return &Result{
		AlternativeTimeSlots:        slots,
		NearbyScreenRecommendations: screens,
		Reasoning:                   rulesReasoning(req, slots, len(screens)),
	}, nil
}

// nearestFreeSlots returns up to limit unbooked slots other than selected,
// ordered by distance from selected in display order, earlier slot first on ties.
// An unknown selected slot has no neighbours and yields none.
func nearestFreeSlots(selected booking.TimeSlot, booked []booking.TimeSlot, limit int) []string {
	taken := make(map[booking.TimeSlot]bool, len(booked)+1)
	for _, s := range booked {
		taken[s] = true
	}
	taken[selected] = true

	all := booking.TimeSlots()
	origin := selected.Index()
	out := make([]string, 0, limit)
	if origin < 0 {
		return out
	}

	for dist := 1; dist < len(all) && len(out) < limit; dist++ {
		for _, idx := range []int{origin - dist, origin + dist} {
			if idx < 0 || idx >= len(all) || taken[all[idx]] {
				continue
			}
			out = append(out, string(all[idx]))
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func rulesReasoning(req Request, slots []string, freeScreens int) string {
	var b strings.Builder

	if req.DemandLevel == demand.LevelHigh {
		fmt.Fprintf(&b, "The %s on %s is already taken or in high demand.", req.SelectedTimeSlot, booking.FormatDate(req.SelectedDate))
	} else {
		fmt.Fprintf(&b, "This screen already has several bookings on %s.", booking.FormatDate(req.SelectedDate))
	}

	switch len(slots) {
	case 0:
		b.WriteString(" No other time slots are free on this screen that day.")
	case 1:
		fmt.Fprintf(&b, " The %s is still free on this screen.", slots[0])
	default:
		fmt.Fprintf(&b, " The %s are still free on this screen.", strings.Join(slots, " and "))
	}

	switch freeScreens {
	case 0:
		b.WriteString(" Every other screen already has bookings that day.")
	case 1:
		b.WriteString(" One other screen has no bookings that day.")
	default:
		fmt.Fprintf(&b, " %d other screens have no bookings that day.", freeScreens)
	}

	return b.String()
}
