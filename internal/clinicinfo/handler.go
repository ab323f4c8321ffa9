package clinicinfo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Handler serves the public contact card and the contact-form endpoints.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a clinicinfo handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GetContact handles GET /contact
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.GetContact(r.Context())
	if err != nil {
		h.logger.Error("failed to load contact info", "error", err)
		http.Error(w, `{"error": "failed to load contact info"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// UpdateContact handles PUT /contact (provider session required).
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.ProviderFromContext(r.Context()); !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	var update ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	info, err := h.store.UpdateContact(r.Context(), &update)
	if err != nil {
		h.logger.Error("failed to update contact info", "error", err)
		http.Error(w, `{"error": "failed to update contact info"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// CreateMessage handles POST /messages (public contact form).
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := h.store.InsertMessage(r.Context(), &msg); err != nil {
		if errors.Is(err, ErrInvalidMessage) {
			b, _ := json.Marshal(map[string]string{"error": err.Error()})
			http.Error(w, string(b), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to store contact message", "error", err)
		http.Error(w, `{"error": "failed to store message"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListMessages handles GET /messages?limit= (provider session required).
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.ProviderFromContext(r.Context()); !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, `{"error": "limit must be a non-negative integer"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}

	msgs, err := h.store.ListMessages(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list contact messages", "error", err)
		http.Error(w, `{"error": "failed to list messages"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
