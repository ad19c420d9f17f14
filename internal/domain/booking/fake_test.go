package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory Repository enforcing the (screen, date, slot)
// uniqueness the database constraint provides.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	screens  map[uuid.UUID]string
	countErr error
	// skipCount makes CountBySlot report zero so the conditional insert is
	// what detects the conflict.
	skipCount bool
}

func newMemoryRepo(screens ...uuid.UUID) *memoryRepo {
	m := &memoryRepo{bookings: map[uuid.UUID]*Booking{}, screens: map[uuid.UUID]string{}}
	for i, id := range screens {
		m.screens[id] = "Screen " + string(rune('A'+i))
	}
	return m
}

func (m *memoryRepo) Create(ctx context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.screens[b.ScreenID]; !ok {
		return ErrScreenNotFound
	}
	for _, existing := range m.bookings {
		if existing.ScreenID == b.ScreenID && existing.Date.Equal(b.Date) && existing.TimeSlot == b.TimeSlot {
			return ErrSlotTaken
		}
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &BookingDetails{Booking: *b, ScreenName: m.screens[b.ScreenID]}, nil
}

func (m *memoryRepo) List(ctx context.Context, filter ListFilter) ([]*BookingDetails, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*BookingDetails
	for _, b := range m.bookings {
		if filter.ScreenID != nil && b.ScreenID != *filter.ScreenID {
			continue
		}
		out = append(out, &BookingDetails{Booking: *b, ScreenName: m.screens[b.ScreenID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (m *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *memoryRepo) inRange(b *Booking, screenID uuid.UUID, start, end time.Time) bool {
	return b.ScreenID == screenID && !b.Date.Before(start) && !b.Date.After(end)
}

func (m *memoryRepo) CountBySlot(ctx context.Context, screenID uuid.UUID, start, end time.Time, slot TimeSlot) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	if m.skipCount {
		return 0, nil
	}
	n := 0
	for _, b := range m.bookings {
		if m.inRange(b, screenID, start, end) && b.TimeSlot == slot {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) CountByDay(ctx context.Context, screenID uuid.UUID, start, end time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, b := range m.bookings {
		if m.inRange(b, screenID, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) CountByScreenOnDay(ctx context.Context, start, end time.Time) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[uuid.UUID]int{}
	for _, b := range m.bookings {
		if !b.Date.Before(start) && !b.Date.After(end) {
			counts[b.ScreenID]++
		}
	}
	return counts, nil
}

func (m *memoryRepo) BookedSlots(ctx context.Context, screenID uuid.UUID, start, end time.Time) ([]TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var slots []TimeSlot
	for _, b := range m.bookings {
		if m.inRange(b, screenID, start, end) {
			slots = append(slots, b.TimeSlot)
		}
	}
	return slots, nil
}
