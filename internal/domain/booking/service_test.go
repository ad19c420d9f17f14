package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/screentime/screentime-api/internal/pkg/validator"
)

func newTestService(repo Repository) *Service {
	svc := NewService(repo, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func validRequest(screenID uuid.UUID) *CreateBookingRequest {
	return &CreateBookingRequest{
		ScreenID:    screenID.String(),
		Date:        "2025-03-10",
		TimeSlot:    string(Slot5thPeriod),
		UserName:    "Ada Lovelace",
		UserContact: "+7 700 000 0000",
	}
}

func TestCreateBookingThenConflict(t *testing.T) {
	screenID := uuid.New()
	repo := newMemoryRepo(screenID)
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validRequest(screenID))
	if err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}

	got, err := svc.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("booking should be retrievable: %v", err)
	}
	if FormatDate(got.Date) != "2025-03-10" || got.TimeSlot != Slot5thPeriod {
		t.Fatalf("unexpected round trip: %s %q", FormatDate(got.Date), got.TimeSlot)
	}

	if _, err := svc.CreateBooking(ctx, validRequest(screenID)); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCreateBookingConflictDetectedByInsert(t *testing.T) {
	screenID := uuid.New()
	repo := newMemoryRepo(screenID)
	svc := newTestService(repo)

	if _, err := svc.CreateBooking(context.Background(), validRequest(screenID)); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Simulate a racing request that passed the pre-check.
	repo.skipCount = true
	if _, err := svc.CreateBooking(context.Background(), validRequest(screenID)); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken from conditional insert, got %v", err)
	}
}

func TestCreateBookingConcurrentOnlyOneWins(t *testing.T) {
	screenID := uuid.New()
	repo := newMemoryRepo(screenID)
	svc := newTestService(repo)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), validRequest(screenID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || conflicts != workers-1 {
		t.Fatalf("expected exactly one success, got created=%d conflicts=%d", created, conflicts)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))

	req := validRequest(screenID)
	req.TimeSlot = "6th period class"
	req.UserContact = "123"

	_, err := svc.CreateBooking(context.Background(), req)
	var verrs validator.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if verrs["time_slot"] == "" || verrs["user_contact"] == "" {
		t.Fatalf("expected time_slot and user_contact errors, got %#v", verrs)
	}
}

func TestCreateBookingRejectsUnbookableDays(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))

	past := validRequest(screenID)
	past.Date = "2025-02-28"
	if _, err := svc.CreateBooking(context.Background(), past); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}

	today := validRequest(screenID)
	today.Date = "2025-03-01"
	if _, err := svc.CreateBooking(context.Background(), today); err != nil {
		t.Fatalf("today must be bookable, got %v", err)
	}

	sunday := validRequest(screenID)
	sunday.Date = "2025-03-09"
	if _, err := svc.CreateBooking(context.Background(), sunday); !errors.Is(err, ErrClosedDay) {
		t.Fatalf("expected ErrClosedDay, got %v", err)
	}
}

func TestCreateBookingUnknownScreen(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	if _, err := svc.CreateBooking(context.Background(), validRequest(uuid.New())); !errors.Is(err, ErrScreenNotFound) {
		t.Fatalf("expected ErrScreenNotFound, got %v", err)
	}
}

func TestCreateBookingStorageFailureIsReturned(t *testing.T) {
	screenID := uuid.New()
	repo := newMemoryRepo(screenID)
	repo.countErr = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.CreateBooking(context.Background(), validRequest(screenID))
	if err == nil || errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
}

func TestBookedSlotsInDisplayOrder(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))
	ctx := context.Background()

	for _, slot := range []TimeSlot{Slot7thPeriod, Slot4thPeriod} {
		req := validRequest(screenID)
		req.TimeSlot = string(slot)
		if _, err := svc.CreateBooking(ctx, req); err != nil {
			t.Fatalf("create %s: %v", slot, err)
		}
	}

	day, _ := ParseDate("2025-03-10")
	slots, err := svc.BookedSlots(ctx, screenID, day)
	if err != nil {
		t.Fatalf("booked slots: %v", err)
	}
	if len(slots) != 2 || slots[0] != Slot4thPeriod || slots[1] != Slot7thPeriod {
		t.Fatalf("unexpected slots %v", slots)
	}
}

func TestDeleteBooking(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, validRequest(screenID))
	deleted, err := svc.DeleteBooking(ctx, b.ID)
	if err != nil || deleted.ID != b.ID {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.DeleteBooking(ctx, b.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	// The slot is free again.
	if _, err := svc.CreateBooking(ctx, validRequest(screenID)); err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}
}

func TestMapCreateDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505", Constraint: "bookings_screen_date_slot_key"}, want: ErrSlotTaken},
		{name: "fk violation", err: &pq.Error{Code: "23503", Constraint: "bookings_screen_id_fkey"}, want: ErrScreenNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if mapped := mapCreateDBError(tc.err); !errors.Is(mapped, tc.want) {
				t.Fatalf("expected errors.Is(%v), got %v", tc.want, mapped)
			}
		})
	}

	plain := errors.New("boom")
	if mapCreateDBError(plain) != plain {
		t.Fatal("non-pq errors must pass through")
	}
}
