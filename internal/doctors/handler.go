package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaw/vetcare-platform/internal/media"
	"github.com/brightpaw/vetcare-platform/internal/session"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// maxUploadBytes bounds multipart memory use for photo/certificate uploads.
const maxUploadBytes = 20 << 20

// Handler serves the doctor roster and the provider's own profile management.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a doctors handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// ListDoctors handles GET /doctors
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		http.Error(w, `{"error": "failed to list doctors"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctors": profiles})
}

// GetDoctor handles GET /doctors/{providerID}
func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")
	p, err := h.svc.Get(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error": "doctor not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load doctor", "error", err, "provider_id", providerID)
		http.Error(w, `{"error": "failed to load doctor"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PUT /doctors/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	p.ProviderID = provider.ID
	if p.Name == "" {
		p.Name = provider.Name
	}

	updated, err := h.svc.Update(r.Context(), &p)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			b, _ := json.Marshal(map[string]string{"error": err.Error()})
			http.Error(w, string(b), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to update profile", "error", err, "provider_id", provider.ID)
		http.Error(w, `{"error": "failed to update profile"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UploadPhoto handles POST /doctors/me/photo (multipart field "photo").
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, `{"error": "invalid multipart form"}`, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, `{"error": "photo file is required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	p, err := h.svc.SetPhoto(r.Context(), provider.ID, media.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error": "profile not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to upload photo", "error", err, "provider_id", provider.ID)
		http.Error(w, `{"error": "failed to upload photo"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UploadCertificates handles POST /doctors/me/certificates (multipart field
// "certificates", repeated).
func (h *Handler) UploadCertificates(w http.ResponseWriter, r *http.Request) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, `{"error": "invalid multipart form"}`, http.StatusBadRequest)
		return
	}
	headers := r.MultipartForm.File["certificates"]
	if len(headers) == 0 {
		http.Error(w, `{"error": "at least one certificate file is required"}`, http.StatusBadRequest)
		return
	}

	files := make([]media.File, 0, len(headers))
	closers := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			http.Error(w, `{"error": "failed to read upload"}`, http.StatusBadRequest)
			return
		}
		closers = append(closers, f)
		files = append(files, media.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	p, err := h.svc.AddCertificates(r.Context(), provider.ID, files)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error": "profile not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to upload certificates", "error", err, "provider_id", provider.ID)
		http.Error(w, `{"error": "failed to upload certificates"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteCertificate handles DELETE /doctors/me/certificates?url=
func (h *Handler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	provider, ok := session.ProviderFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, `{"error": "url query parameter is required"}`, http.StatusBadRequest)
		return
	}

	p, err := h.svc.DeleteCertificate(r.Context(), provider.ID, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error": "certificate not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete certificate", "error", err, "provider_id", provider.ID)
		http.Error(w, `{"error": "failed to delete certificate"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
