package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Handler handles HTTP requests for availability slots.
type Handler struct {
	store   SlotStore
	metrics *metrics.ScheduleMetrics
	logger  *logging.Logger
}

// NewHandler creates a new slots handler.
func NewHandler(store SlotStore, m *metrics.ScheduleMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, metrics: m, logger: logger}
}

func (h *Handler) manager(r *http.Request) (*Manager, bool) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return NewManager(h.store, provider, h.logger), true
}

// ListSlots handles GET /slots?date=YYYY-MM-DD
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(r)
	if !ok {
		http.Error(w, `{"error": "provider context required"}`, http.StatusBadRequest)
		return
	}

	date := r.URL.Query().Get("date")
	slots, err := m.Load(r.Context(), date)
	if err != nil {
		h.logger.Error("failed to list slots", "date", date, "error", err)
		http.Error(w, `{"error": "failed to load slots"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"date": date, "slots": slots})
}

// CreateSlot handles POST /slots
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(r)
	if !ok {
		http.Error(w, `{"error": "provider context required"}`, http.StatusBadRequest)
		return
	}

	var req NewSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	// Validate against the freshest view of the day, strictly before writing.
	if _, err := m.Load(r.Context(), req.Date); err != nil {
		http.Error(w, `{"error": "failed to load slots"}`, http.StatusInternalServerError)
		return
	}

	slot, err := m.Add(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRange):
		http.Error(w, jsonError(err), http.StatusBadRequest)
		return
	case errors.Is(err, ErrOverlap):
		h.metrics.ObserveConflict("overlap")
		http.Error(w, jsonError(err), http.StatusConflict)
		return
	default:
		h.logger.Error("failed to create slot", "error", err)
		http.Error(w, `{"error": "failed to create slot"}`, http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveSlotCreated()
	writeJSON(w, http.StatusCreated, slot)
}

// DeleteSlot handles DELETE /slots/{slotID}?date=YYYY-MM-DD
func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(r)
	if !ok {
		http.Error(w, `{"error": "provider context required"}`, http.StatusBadRequest)
		return
	}

	slotID := chi.URLParam(r, "slotID")
	date := r.URL.Query().Get("date")
	if _, err := m.Load(r.Context(), date); err != nil {
		http.Error(w, `{"error": "failed to load slots"}`, http.StatusInternalServerError)
		return
	}

	err := m.Delete(r.Context(), slotID)
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotFound):
		http.Error(w, jsonError(err), http.StatusNotFound)
		return
	case errors.Is(err, ErrSlotReserved):
		h.metrics.ObserveConflict("reserved_delete")
		http.Error(w, jsonError(err), http.StatusConflict)
		return
	default:
		h.logger.Error("failed to delete slot", "slot_id", slotID, "error", err)
		http.Error(w, `{"error": "failed to delete slot"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": slotID, "slots": m.Slots()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}
