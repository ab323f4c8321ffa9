package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightpaw/vetcare-platform/internal/appointments"
	"github.com/brightpaw/vetcare-platform/internal/booking"
	"github.com/brightpaw/vetcare-platform/internal/clinicinfo"
	"github.com/brightpaw/vetcare-platform/internal/dashboard"
	"github.com/brightpaw/vetcare-platform/internal/doctors"
	httpmiddleware "github.com/brightpaw/vetcare-platform/internal/http/middleware"
	"github.com/brightpaw/vetcare-platform/internal/schedule"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ScheduleHandler     *schedule.Handler
	AppointmentsHandler *appointments.Handler
	BookingHandler      *booking.Handler
	DashboardHandler    *dashboard.Handler
	ClinicInfoHandler   *clinicinfo.Handler
	DoctorsHandler      *doctors.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	r.Use(httpmiddleware.ProviderSession())

	// Public endpoints: health, metrics, the booking site surface.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.BookingHandler != nil {
			public.Route("/bookings", func(r chi.Router) {
				r.Post("/slot", cfg.BookingHandler.BookSlot)
				r.Post("/boarding", cfg.BookingHandler.CreateBoarding)
				r.Post("/transport", cfg.BookingHandler.CreateTransport)
			})
		}
		if cfg.ClinicInfoHandler != nil {
			public.Get("/contact", cfg.ClinicInfoHandler.GetContact)
			public.Post("/messages", cfg.ClinicInfoHandler.CreateMessage)
		}
		if cfg.DoctorsHandler != nil {
			public.Get("/doctors", cfg.DoctorsHandler.ListDoctors)
			public.Get("/doctors/{providerID}", cfg.DoctorsHandler.GetDoctor)
		}
	})

	// Provider endpoints: everything behind a provider session.
	r.Group(func(provider chi.Router) {
		provider.Use(httpmiddleware.RequireProvider())
		if cfg.ScheduleHandler != nil {
			provider.Route("/slots", func(r chi.Router) {
				r.Get("/", cfg.ScheduleHandler.ListSlots)
				r.Post("/", cfg.ScheduleHandler.CreateSlot)
				r.Delete("/{slotID}", cfg.ScheduleHandler.DeleteSlot)
			})
		}
		if cfg.AppointmentsHandler != nil {
			provider.Route("/appointments", func(r chi.Router) {
				r.Get("/", cfg.AppointmentsHandler.ListAppointments)
				r.Patch("/{apptID}/status", cfg.AppointmentsHandler.UpdateStatus)
			})
		}
		if cfg.DashboardHandler != nil {
			provider.Get("/dashboard/stats", cfg.DashboardHandler.GetStats)
		}
		if cfg.ClinicInfoHandler != nil {
			provider.Put("/contact", cfg.ClinicInfoHandler.UpdateContact)
			provider.Get("/messages", cfg.ClinicInfoHandler.ListMessages)
		}
		if cfg.DoctorsHandler != nil {
			provider.Route("/doctors/me", func(r chi.Router) {
				r.Put("/", cfg.DoctorsHandler.UpdateProfile)
				r.Post("/photo", cfg.DoctorsHandler.UploadPhoto)
				r.Post("/certificates", cfg.DoctorsHandler.UploadCertificates)
				r.Delete("/certificates", cfg.DoctorsHandler.DeleteCertificate)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
