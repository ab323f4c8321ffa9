package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightpaw/vetcare-platform/internal/appointments"
	"github.com/brightpaw/vetcare-platform/internal/schedule"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

type stubSlotStore struct{}

func (stubSlotStore) ListDay(context.Context, string, string) ([]schedule.Slot, error) {
	return nil, nil
}
func (stubSlotStore) Put(context.Context, *schedule.Slot) error    { return nil }
func (stubSlotStore) Delete(context.Context, string, string) error { return nil }

type stubApptRepo struct{}

func (stubApptRepo) List(context.Context, string, appointments.DateFilter, string) ([]appointments.Appointment, error) {
	return nil, nil
}
func (stubApptRepo) UpdateStatus(context.Context, string, string, appointments.Status) error {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	cfg := &Config{
		Logger:              logger,
		ScheduleHandler:     schedule.NewHandler(stubSlotStore{}, nil, logger),
		AppointmentsHandler: appointments.NewHandler(stubApptRepo{}, logger),
	}
	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterProviderRoutesRequireSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/slots?date=2026-09-14", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestRouterProviderRoutesAcceptSessionHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/slots?date=2026-09-14", nil)
	req.Header.Set("X-Provider-ID", "prov-1")
	req.Header.Set("X-Provider-Name", "Dr. Mercer")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
