// Package demand classifies how contended a (screen, day, slot) selection is
// from the current booking counts.
package demand

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/pkg/logger"
	"github.com/screentime/screentime-api/internal/pkg/metrics"
)

// Level is the contention classification of a selection
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Messages attached to classifications
const (
	MessageHigh       = "This specific slot is already booked or has high interest."
	MessageMedium     = "This screen has multiple bookings today."
	MessageLookupFail = "Could not determine demand."
)

// mediumThreshold is the number of same-day bookings that makes a screen busy
const mediumThreshold = 2

// Info is the result of a classification
type Info struct {
	Level   Level  `json:"level"`
	Message string `json:"message,omitempty"`
}

// IsContended reports whether recommendations should be requested
func (i Info) IsContended() bool {
	return i.Level == LevelMedium || i.Level == LevelHigh
}

// Counter reads booking counts for one screen within inclusive day bounds
type Counter interface {
	CountBySlot(ctx context.Context, screenID uuid.UUID, start, end time.Time, slot booking.TimeSlot) (int, error)
	CountByDay(ctx context.Context, screenID uuid.UUID, start, end time.Time) (int, error)
}

// Classifier computes demand levels
type Classifier struct {
	counter Counter
}

// NewClassifier creates a classifier over counter
func NewClassifier(counter Counter) *Classifier {
	return &Classifier{counter: counter}
}

// Classify returns high when the slot itself is booked, medium when the screen
// already has two or more bookings that day, and low otherwise. Read failures
// fail open to low.
func (c *Classifier) Classify(ctx context.Context, screenID uuid.UUID, date time.Time, slot booking.TimeSlot) Info {
	info := c.classify(ctx, screenID, date, slot)
	metrics.DemandClassifications.WithLabelValues(string(info.Level)).Inc()
	return info
}

func (c *Classifier) classify(ctx context.Context, screenID uuid.UUID, date time.Time, slot booking.TimeSlot) Info {
	start, end := booking.DayBounds(date)

	slotCount, err := c.counter.CountBySlot(ctx, screenID, start, end, slot)
	if err != nil {
		return c.failOpen(ctx, screenID, date, slot, err)
	}
	if slotCount > 0 {
		return Info{Level: LevelHigh, Message: MessageHigh}
	}

	dayCount, err := c.counter.CountByDay(ctx, screenID, start, end)
	if err != nil {
		return c.failOpen(ctx, screenID, date, slot, err)
	}
	if dayCount >= mediumThreshold {
		return Info{Level: LevelMedium, Message: MessageMedium}
	}

	return Info{Level: LevelLow}
}

func (c *Classifier) failOpen(ctx context.Context, screenID uuid.UUID, date time.Time, slot booking.TimeSlot, err error) Info {
	metrics.DemandLookupFailures.Inc()
	logger.FromContext(ctx).Warn().
		Err(err).
		Str("screen_id", screenID.String()).
		Str("date", booking.FormatDate(date)).
		Str("time_slot", string(slot)).
		Msg("Demand lookup failed, assuming low demand")
	return Info{Level: LevelLow, Message: MessageLookupFail}
}
