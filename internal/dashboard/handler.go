package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Handler serves the provider dashboard summary.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// GetStats handles GET /dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	stats, err := h.svc.Stats(r.Context(), provider.ID)
	if err != nil {
		h.logger.Error("failed to load dashboard stats", "error", err, "provider_id", provider.ID)
		http.Error(w, `{"error": "failed to load stats"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(stats)
}
