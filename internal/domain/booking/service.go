package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/screentime/screentime-api/internal/pkg/metrics"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Service handles booking business logic
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService creates booking service. loc decides which calendar day "today" is.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// CreateBooking validates req and persists a booking. It fails with
// ErrSlotTaken when the slot is already booked, whether that is found by the
// pre-insert check or by the conditional insert losing a race.
func (s *Service) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	screenID, _ := uuid.Parse(req.ScreenID)
	date, _ := ParseDate(req.Date)
	slot := TimeSlot(req.TimeSlot)

	if err := s.checkBookable(date); err != nil {
		return nil, err
	}

	// Best-effort re-check; the unique constraint closes the race.
	start, end := DayBounds(date)
	existing, err := s.repo.CountBySlot(ctx, screenID, start, end, slot)
	if err != nil {
		metrics.BookingCommits.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if existing > 0 {
		metrics.BookingCommits.WithLabelValues("conflict").Inc()
		return nil, ErrSlotTaken
	}

	b := &Booking{
		ID:          uuid.New(),
		ScreenID:    screenID,
		Date:        date,
		TimeSlot:    slot,
		UserName:    strings.TrimSpace(req.UserName),
		UserContact: strings.TrimSpace(req.UserContact),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			metrics.BookingCommits.WithLabelValues("conflict").Inc()
			return nil, ErrSlotTaken
		case errors.Is(err, ErrScreenNotFound):
			metrics.BookingCommits.WithLabelValues("error").Inc()
			return nil, ErrScreenNotFound
		default:
			metrics.BookingCommits.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}

	metrics.BookingCommits.WithLabelValues("created").Inc()
	log.Info().
		Str("booking_id", b.ID.String()).
		Str("screen_id", screenID.String()).
		Str("date", FormatDate(date)).
		Str("time_slot", string(slot)).
		Msg("Booking created")

	return b, nil
}

// checkBookable rejects past days and Sundays, judged in the service time zone
func (s *Service) checkBookable(date time.Time) error {
	today := NormalizeIn(s.now(), s.loc)
	if date.Before(today) {
		return ErrPastDate
	}
	if date.Weekday() == time.Sunday {
		return ErrClosedDay
	}
	return nil
}

// GetBooking returns a booking with its screen
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// BookedSlots returns the slots already taken on screenID for the day of date,
// in display order.
func (s *Service) BookedSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]TimeSlot, error) {
	start, end := DayBounds(date)
	slots, err := s.repo.BookedSlots(ctx, screenID, start, end)
	if err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}

	taken := make(map[TimeSlot]bool, len(slots))
	for _, slot := range slots {
		taken[slot] = true
	}

	ordered := make([]TimeSlot, 0, len(taken))
	for _, slot := range timeSlots {
		if taken[slot] {
			ordered = append(ordered, slot)
		}
	}
	return ordered, nil
}

// ListBookings returns bookings newest first
func (s *Service) ListBookings(ctx context.Context, filter ListFilter) ([]*BookingDetails, int, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// DeleteBooking removes a booking and returns what was deleted
func (s *Service) DeleteBooking(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	return b, nil
}
