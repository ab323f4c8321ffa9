package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Handler handles the public booking endpoints.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new booking handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// BookSlot handles POST /bookings/slot
func (h *Handler) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	appt, err := h.svc.BookSlot(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidBooking):
		http.Error(w, jsonError(err), http.StatusBadRequest)
		return
	case errors.Is(err, ErrSlotTaken):
		http.Error(w, jsonError(err), http.StatusConflict)
		return
	default:
		h.logger.Error("failed to book slot", "error", err)
		http.Error(w, `{"error": "failed to book slot"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// CreateBoarding handles POST /bookings/boarding
func (h *Handler) CreateBoarding(w http.ResponseWriter, r *http.Request) {
	var req BoardingBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateBoarding(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidBooking):
		http.Error(w, jsonError(err), http.StatusBadRequest)
		return
	default:
		h.logger.Error("failed to create boarding booking", "error", err)
		http.Error(w, `{"error": "failed to create booking"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// CreateTransport handles POST /bookings/transport
func (h *Handler) CreateTransport(w http.ResponseWriter, r *http.Request) {
	var req TransportBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateTransport(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidBooking):
		http.Error(w, jsonError(err), http.StatusBadRequest)
		return
	default:
		h.logger.Error("failed to create transport booking", "error", err)
		http.Error(w, `{"error": "failed to create booking"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
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
