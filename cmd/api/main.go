package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brightpaw/vetcare-platform/cmd/mainconfig"
	"github.com/brightpaw/vetcare-platform/internal/api/router"
	"github.com/brightpaw/vetcare-platform/internal/appointments"
	"github.com/brightpaw/vetcare-platform/internal/booking"
	"github.com/brightpaw/vetcare-platform/internal/clinicinfo"
	appconfig "github.com/brightpaw/vetcare-platform/internal/config"
	"github.com/brightpaw/vetcare-platform/internal/dashboard"
	"github.com/brightpaw/vetcare-platform/internal/doctors"
	"github.com/brightpaw/vetcare-platform/internal/media"
	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/internal/schedule"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

func main() {
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting vetcare-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	s3Client := s3.NewFromConfig(awsCfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(redisOptions)
	}

	registry := prometheus.NewRegistry()
	scheduleMetrics := metrics.NewScheduleMetrics(registry)
	bookingMetrics := metrics.NewBookingMetrics(registry)
	dashboardMetrics := metrics.NewDashboardMetrics(registry)

	// Stores
	slotStore := schedule.NewStore(dynamoClient, cfg.SlotsTable, logger)
	apptRepo := appointments.NewRepository(dynamoClient, cfg.AppointmentsTable, logger)
	clinicStore := clinicinfo.NewStore(dynamoClient, cfg.ContactInfoTable, cfg.MessagesTable, logger)
	doctorStore := doctors.NewStore(dynamoClient, cfg.DoctorsTable, logger)
	mediaStore := media.NewStore(s3Client, cfg.MediaBucket, cfg.AWSRegion, "", logger)

	// Services
	bookingService := booking.NewService(dynamoClient, slotStore, apptRepo,
		cfg.BoardingTable, cfg.TransportTable, bookingMetrics, logger)
	dashboardService := dashboard.NewService(apptRepo, slotStore, redisClient,
		cfg.StatsCacheTTL, dashboardMetrics, logger)
	doctorService := doctors.NewService(doctorStore, mediaStore, logger)

	// Handlers
	routerCfg := &router.Config{
		Logger:              logger,
		ScheduleHandler:     schedule.NewHandler(slotStore, scheduleMetrics, logger),
		AppointmentsHandler: appointments.NewHandler(apptRepo, logger),
		BookingHandler:      booking.NewHandler(bookingService, logger),
		DashboardHandler:    dashboard.NewHandler(dashboardService, logger),
		ClinicInfoHandler:   clinicinfo.NewHandler(clinicStore, logger),
		DoctorsHandler:      doctors.NewHandler(doctorService, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
