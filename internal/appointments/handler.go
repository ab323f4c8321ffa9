package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Handler handles HTTP requests for the staff appointment views.
type Handler struct {
	repo   Lister
	logger *logging.Logger
}

// NewHandler creates a new appointments handler.
func NewHandler(repo Lister, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) service(r *http.Request) (*Service, bool) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return NewService(h.repo, provider.ID, h.logger), true
}

// ListAppointments handles GET /appointments?filter=upcoming|today|past|all
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(r)
	if !ok {
		http.Error(w, `{"error": "provider context required"}`, http.StatusBadRequest)
		return
	}

	filter, err := ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, `{"error": "filter must be one of upcoming, today, past, all"}`, http.StatusBadRequest)
		return
	}

	appts, err := svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list appointments", "filter", filter, "error", err)
		http.Error(w, `{"error": "failed to list appointments"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filter":       filter,
		"appointments": appts,
		"count":        len(appts),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /appointments/{apptID}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(r)
	if !ok {
		http.Error(w, `{"error": "provider context required"}`, http.StatusBadRequest)
		return
	}

	apptID := chi.URLParam(r, "apptID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	to, err := ParseStatus(req.Status)
	if err != nil {
		http.Error(w, `{"error": "unknown status"}`, http.StatusBadRequest)
		return
	}

	// Build the projection the transition is checked against.
	if _, err := svc.List(r.Context(), FilterAll); err != nil {
		http.Error(w, `{"error": "failed to load appointments"}`, http.StatusInternalServerError)
		return
	}

	updated, err := svc.UpdateStatus(r.Context(), apptID, to)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		http.Error(w, `{"error": "appointment not found"}`, http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, `{"error": "illegal status transition"}`, http.StatusConflict)
		return
	default:
		h.logger.Error("failed to update status", "appointment_id", apptID, "error", err)
		http.Error(w, `{"error": "failed to update status"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
