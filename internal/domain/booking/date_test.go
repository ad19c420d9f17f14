package booking

import (
	"testing"
	"time"
)

func TestNormalizeDateIsIdempotent(t *testing.T) {
	almaty := time.FixedZone("UTC+5", 5*3600)
	inputs := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 3, 10, 1, 30, 0, 0, almaty),
		time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, in := range inputs {
		once := NormalizeDate(in)
		if !once.Equal(want) {
			t.Fatalf("NormalizeDate(%v) = %v, want %v", in, once, want)
		}
		if twice := NormalizeDate(once); !twice.Equal(once) {
			t.Fatalf("normalization not idempotent: %v -> %v", once, twice)
		}
	}
}

func TestNormalizeInUsesLocationDay(t *testing.T) {
	// 22:00 UTC on the 9th is already the 10th in UTC+5.
	instant := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	got := NormalizeIn(instant, time.FixedZone("UTC+5", 5*3600))
	if FormatDate(got) != "2025-03-10" {
		t.Fatalf("expected 2025-03-10, got %s", FormatDate(got))
	}
	if FormatDate(NormalizeIn(instant, nil)) != "2025-03-09" {
		t.Fatal("nil location must behave as UTC")
	}
}

func TestParseAndFormatRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Hour() != 12 || d.Location() != time.UTC {
		t.Fatalf("expected noon UTC, got %v", d)
	}
	if FormatDate(d) != "2025-03-10" {
		t.Fatalf("expected round trip, got %s", FormatDate(d))
	}
	// Postgres may hand the value back in a non-UTC zone.
	if FormatDate(d.In(time.FixedZone("UTC-8", -8*3600))) != "2025-03-10" {
		t.Fatal("formatting must not depend on the zone of the scanned value")
	}
	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestDayBounds(t *testing.T) {
	d, _ := ParseDate("2025-03-10")
	start, end := DayBounds(d)
	if !start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}
	if d.Before(start) || d.After(end) {
		t.Fatal("stored date must fall inside its own day bounds")
	}
}

func TestTimeSlotOrder(t *testing.T) {
	if Slot4thPeriod.Index() != 0 || Slot5thPeriod.Index() != 1 || Slot7thPeriod.Index() != 2 {
		t.Fatal("unexpected display order")
	}
	if TimeSlot("6th period class").IsValid() {
		t.Fatal("unknown slot must be invalid")
	}
	slots := TimeSlots()
	slots[0] = "mutated"
	if TimeSlots()[0] != Slot4thPeriod {
		t.Fatal("TimeSlots must return a copy")
	}
}
