package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
	"github.com/screentime/screentime-api/internal/domain/recommendation"
	"github.com/screentime/screentime-api/internal/domain/screen"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

type staticScreens []*screen.Screen

func (s staticScreens) List(ctx context.Context) ([]*screen.Screen, error) {
	return s, nil
}

type staticClassifier struct {
	info  demand.Info
	calls int
}

func (c *staticClassifier) Classify(ctx context.Context, screenID uuid.UUID, date time.Time, slot booking.TimeSlot) demand.Info {
	c.calls++
	return c.info
}

type stubRecommender struct {
	result *recommendation.Result
	err    error
	got    *recommendation.Request
}

func (r *stubRecommender) Request(ctx context.Context, req recommendation.Request) (*recommendation.Result, error) {
	r.got = &req
	return r.result, r.err
}

type staticSlots []booking.TimeSlot

func (s staticSlots) BookedSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]booking.TimeSlot, error) {
	return s, nil
}

var (
	lobby   = &screen.Screen{ID: uuid.New(), Name: "Main Lobby Screen", Location: "Main Building, 1st Floor"}
	library = &screen.Screen{ID: uuid.New(), Name: "Library Display", Location: "Library, Entrance"}
	gym     = &screen.Screen{ID: uuid.New(), Name: "Gymnasium Board", Location: "Sports Complex"}
)

func checkRequest(screenID uuid.UUID, slot booking.TimeSlot) *CheckRequest {
	return &CheckRequest{
		ScreenID: screenID.String(),
		Date:     "2025-03-03",
		TimeSlot: string(slot),
	}
}

func TestCheckLowDemandSkipsRecommender(t *testing.T) {
	rec := &stubRecommender{}
	svc := NewService(staticScreens{lobby, library}, &staticClassifier{info: demand.Info{Level: demand.LevelLow}}, rec, staticSlots{})

	res, err := svc.Check(context.Background(), checkRequest(lobby.ID, booking.Slot4thPeriod))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if rec.got != nil {
		t.Fatal("recommender must not be called for low demand")
	}
	if !res.Available || res.Recommendations != nil || res.RecommendationsUnavailable {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Date != "2025-03-03" {
		t.Fatalf("expected normalized date, got %q", res.Date)
	}
}

func TestCheckSanitizesRecommendations(t *testing.T) {
	unknown := uuid.New().String()
	rec := &stubRecommender{result: &recommendation.Result{
		AlternativeTimeSlots: []string{
			string(booking.Slot4thPeriod), // selected
			string(booking.Slot5thPeriod), // booked
			"lunch",
			string(booking.Slot7thPeriod),
			string(booking.Slot7thPeriod),
		},
		NearbyScreenRecommendations: []string{lobby.ID.String(), unknown, "garbage", gym.ID.String(), gym.ID.String()},
		Reasoning:                   "The 7th period is free.",
	}}
	classifier := &staticClassifier{info: demand.Info{Level: demand.LevelHigh, Message: demand.MessageHigh}}
	svc := NewService(staticScreens{lobby, library, gym}, classifier, rec,
		staticSlots{booking.Slot4thPeriod, booking.Slot5thPeriod})

	res, err := svc.Check(context.Background(), checkRequest(lobby.ID, booking.Slot4thPeriod))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Available {
		t.Fatal("selected slot is booked and must not be reported available")
	}
	if rec.got == nil || len(rec.got.CandidateScreenIDs) != 2 {
		t.Fatalf("expected two candidate screens, got %+v", rec.got)
	}
	for _, id := range rec.got.CandidateScreenIDs {
		if id == lobby.ID {
			t.Fatal("selected screen must not be a candidate")
		}
	}

	got := res.Recommendations
	if got == nil {
		t.Fatal("expected recommendations")
	}
	if len(got.AlternativeTimeSlots) != 1 || got.AlternativeTimeSlots[0] != booking.Slot7thPeriod {
		t.Fatalf("unexpected slots: %v", got.AlternativeTimeSlots)
	}
	if len(got.NearbyScreens) != 1 || got.NearbyScreens[0].ID != gym.ID || got.NearbyScreens[0].Name != gym.Name {
		t.Fatalf("unexpected screens: %+v", got.NearbyScreens)
	}
	if got.Reasoning != "The 7th period is free." {
		t.Fatalf("unexpected reasoning: %q", got.Reasoning)
	}
}

func TestCheckRecommenderFailureIsNotFatal(t *testing.T) {
	rec := &stubRecommender{err: recommendation.ErrTimeout}
	svc := NewService(staticScreens{lobby, library}, &staticClassifier{info: demand.Info{Level: demand.LevelMedium}}, rec, staticSlots{})

	res, err := svc.Check(context.Background(), checkRequest(lobby.ID, booking.Slot7thPeriod))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !res.RecommendationsUnavailable || res.Recommendations != nil {
		t.Fatalf("expected recommendations_unavailable, got %+v", res)
	}
	if res.Demand.Level != demand.LevelMedium {
		t.Fatalf("demand must still be reported, got %q", res.Demand.Level)
	}
}

// downStore fails every booking read
type downStore struct{}

var errStorageDown = errors.New("storage unavailable")

func (downStore) CountBySlot(ctx context.Context, screenID uuid.UUID, start, end time.Time, slot booking.TimeSlot) (int, error) {
	return 0, errStorageDown
}

func (downStore) CountByDay(ctx context.Context, screenID uuid.UUID, start, end time.Time) (int, error) {
	return 0, errStorageDown
}

func (downStore) BookedSlots(ctx context.Context, screenID uuid.UUID, date time.Time) ([]booking.TimeSlot, error) {
	return nil, errStorageDown
}

func TestCheckFailsOpenWhenStorageDown(t *testing.T) {
	rec := &stubRecommender{}
	svc := NewService(staticScreens{lobby, library}, demand.NewClassifier(downStore{}), rec, downStore{})

	res, err := svc.Check(context.Background(), checkRequest(lobby.ID, booking.Slot5thPeriod))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Demand.Level != demand.LevelLow || res.Demand.Message != demand.MessageLookupFail {
		t.Fatalf("expected fail-open demand, got %+v", res.Demand)
	}
	if !res.BookedSlotsUnavailable || len(res.BookedSlots) != 0 {
		t.Fatalf("expected flagged empty booked slots, got %+v", res)
	}
	if !res.Available {
		t.Fatal("low demand must leave the slot bookable")
	}
	if rec.got != nil {
		t.Fatal("recommender must not be called for low demand")
	}
}

func TestCheckErrors(t *testing.T) {
	classifier := &staticClassifier{info: demand.Info{Level: demand.LevelLow}}
	svc := NewService(staticScreens{lobby}, classifier, &stubRecommender{}, staticSlots{})

	_, err := svc.Check(context.Background(), checkRequest(uuid.New(), booking.Slot4thPeriod))
	if !errors.Is(err, ErrScreenNotFound) {
		t.Fatalf("expected ErrScreenNotFound, got %v", err)
	}

	_, err = svc.Check(context.Background(), &CheckRequest{ScreenID: lobby.ID.String(), Date: "03/03/2025", TimeSlot: "lunch"})
	var verrs validator.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs["date"]; !ok {
		t.Fatalf("expected date error, got %v", verrs)
	}
	if _, ok := verrs["time_slot"]; !ok {
		t.Fatalf("expected time_slot error, got %v", verrs)
	}
	if classifier.calls != 0 {
		t.Fatal("classifier must not run for rejected requests")
	}
}

func TestCheckHandler(t *testing.T) {
	svc := NewService(staticScreens{lobby, library}, &staticClassifier{info: demand.Info{Level: demand.LevelLow}}, &stubRecommender{}, staticSlots{})
	r := chi.NewRouter()
	r.Mount("/availability", NewHandler(svc).Routes())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"screen_id":"` + lobby.ID.String() + `","date":"2025-03-03","time_slot":"7th period class"}`, http.StatusOK},
		{"unknown screen", `{"screen_id":"` + uuid.NewString() + `","date":"2025-03-03","time_slot":"7th period class"}`, http.StatusNotFound},
		{"invalid", `{"screen_id":"x","date":"2025-03-03","time_slot":"7th period class"}`, http.StatusUnprocessableEntity},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/availability/check", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK {
				var body struct {
					Data CheckResult `json:"data"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Data.Demand.Level != demand.LevelLow || !body.Data.Available {
					t.Fatalf("unexpected body: %+v", body.Data)
				}
			}
		})
	}
}
