package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/domain/admin"
)

type recordingAuditor struct {
	entries []admin.AuditEntry
}

func (a *recordingAuditor) LogAction(ctx context.Context, entry admin.AuditEntry) {
	a.entries = append(a.entries, entry)
}

func newTestRouter(svc *Service, auditor Auditor) http.Handler {
	h := NewHandler(svc, auditor)
	r := chi.NewRouter()
	r.Mount("/bookings", h.PublicRoutes())
	r.Get("/screens/{id}/booked-slots", h.BookedSlots)
	r.Get("/time-slots", h.TimeSlots)
	// Admin routes without the JWT layer, which is covered in the admin package.
	r.Get("/admin/bookings", h.List)
	r.Delete("/admin/bookings/{id}", h.Delete)
	return r
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateBookingHandler(t *testing.T) {
	screenID := uuid.New()
	router := newTestRouter(newTestService(newMemoryRepo(screenID)), &recordingAuditor{})

	body := `{"screen_id":"` + screenID.String() + `","date":"2025-03-10","time_slot":"5th period class","user_name":"Ada","user_contact":"+77000000000"}`

	rr := doRequest(router, http.MethodPost, "/bookings", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created struct {
		Data BookingResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Date != "2025-03-10" || created.Data.TimeSlot != Slot5thPeriod {
		t.Fatalf("unexpected body %+v", created.Data)
	}

	rr = doRequest(router, http.MethodPost, "/bookings", body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), SlotTakenMessage) {
		t.Fatalf("expected conflict message, got %s", rr.Body.String())
	}

	rr = doRequest(router, http.MethodGet, "/bookings/"+created.Data.ID.String(), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestCreateBookingHandlerValidation(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepo()), &recordingAuditor{})

	rr := doRequest(router, http.MethodPost, "/bookings", `{"screen_id":"nope","date":"2025-03-10","time_slot":"x","user_name":"A","user_contact":"1"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = doRequest(router, http.MethodPost, "/bookings", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestBookedSlotsHandler(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))
	if _, err := svc.CreateBooking(context.Background(), validRequest(screenID)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := newTestRouter(svc, &recordingAuditor{})

	rr := doRequest(router, http.MethodGet, "/screens/"+screenID.String()+"/booked-slots?date=2025-03-10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), string(Slot5thPeriod)) {
		t.Fatalf("expected booked slot in body: %s", rr.Body.String())
	}

	rr = doRequest(router, http.MethodGet, "/screens/"+screenID.String()+"/booked-slots?date=bad", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad date, got %d", rr.Code)
	}
}

func TestTimeSlotsHandler(t *testing.T) {
	router := newTestRouter(newTestService(newMemoryRepo()), &recordingAuditor{})

	rr := doRequest(router, http.MethodGet, "/time-slots", "")
	var body struct {
		Data []TimeSlotResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 3 || body.Data[0].Value != string(Slot4thPeriod) {
		t.Fatalf("unexpected slots %+v", body.Data)
	}
}

func TestAdminDeleteWritesAudit(t *testing.T) {
	screenID := uuid.New()
	svc := newTestService(newMemoryRepo(screenID))
	b, err := svc.CreateBooking(context.Background(), validRequest(screenID))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	auditor := &recordingAuditor{}
	router := newTestRouter(svc, auditor)

	rr := doRequest(router, http.MethodGet, "/admin/bookings", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), b.ID.String()) {
		t.Fatalf("expected booking in admin list, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(router, http.MethodDelete, "/admin/bookings/"+b.ID.String(), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if len(auditor.entries) != 1 || auditor.entries[0].Action != admin.ActionBookingDelete || auditor.entries[0].EntityID != b.ID {
		t.Fatalf("unexpected audit entries %+v", auditor.entries)
	}

	rr = doRequest(router, http.MethodDelete, "/admin/bookings/"+b.ID.String(), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}
}
