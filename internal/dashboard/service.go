package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpaw/vetcare-platform/internal/appointments"
	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// Stats is the dashboard summary for one provider.
type Stats struct {
	TotalAppointments    int `json:"total_appointments"`
	TodayAppointments    int `json:"today_appointments"`
	UpcomingAppointments int `json:"upcoming_appointments"`
	AvailableSlots       int `json:"available_slots"`
}

// AppointmentCounter counts appointments under a date filter.
type AppointmentCounter interface {
	Count(ctx context.Context, providerID string, filter appointments.DateFilter, today string) (int, error)
}

// SlotCounter counts open availability slots from a date onward.
type SlotCounter interface {
	CountOpenFrom(ctx context.Context, providerID, fromDate string) (int, error)
}

// Service computes dashboard stats with a short-lived Redis snapshot in
// front. The four counts run concurrently; if any of them fails the whole
// response degrades to zeros rather than surfacing a partial picture.
type Service struct {
	appts   AppointmentCounter
	slots   SlotCounter
	cache   *redis.Client
	ttl     time.Duration
	metrics *metrics.DashboardMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewService creates a dashboard service. cache may be nil to disable the
// snapshot layer.
func NewService(appts AppointmentCounter, slots SlotCounter, cache *redis.Client, ttl time.Duration, m *metrics.DashboardMetrics, logger *logging.Logger) *Service {
	if appts == nil || slots == nil {
		panic("dashboard: counters are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{
		appts:   appts,
		slots:   slots,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Stats returns the dashboard counters for a provider, serving a cached
// snapshot when one is fresh.
func (s *Service) Stats(ctx context.Context, providerID string) (Stats, error) {
	key := cacheKey(providerID)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	stats, degraded := s.compute(ctx, providerID)
	if !degraded {
		s.toCache(ctx, key, stats)
	}
	return stats, nil
}

// compute runs the four counts concurrently. degraded reports that at least
// one count failed and the zeros must not be cached.
func (s *Service) compute(ctx context.Context, providerID string) (_ Stats, degraded bool) {
	today := s.now().UTC().Format("2006-01-02")

	var (
		stats    Stats
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	count := func(name string, dst *int, fn func(context.Context) (int, error)) {
		defer wg.Done()
		start := time.Now()
		n, err := fn(ctx)
		s.metrics.ObserveQuery(name, time.Since(start).Seconds())
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("dashboard: %s count: %w", name, err)
			}
			return
		}
		*dst = n
	}

	wg.Add(4)
	go count("total", &stats.TotalAppointments, func(ctx context.Context) (int, error) {
		return s.appts.Count(ctx, providerID, appointments.FilterAll, today)
	})
	go count("today", &stats.TodayAppointments, func(ctx context.Context) (int, error) {
		return s.appts.Count(ctx, providerID, appointments.FilterToday, today)
	})
	go count("upcoming", &stats.UpcomingAppointments, func(ctx context.Context) (int, error) {
		return s.appts.Count(ctx, providerID, appointments.FilterUpcoming, today)
	})
	go count("slots", &stats.AvailableSlots, func(ctx context.Context) (int, error) {
		return s.slots.CountOpenFrom(ctx, providerID, today)
	})
	wg.Wait()

	if firstErr != nil {
		s.logger.Error("dashboard stats degraded to zeros", "error", firstErr, "provider_id", providerID)
		return Stats{}, true
	}
	return stats, false
}

func (s *Service) fromCache(ctx context.Context, key string) (Stats, bool) {
	if s.cache == nil {
		return Stats{}, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard cache read failed", "error", err, "key", key)
		}
		return Stats{}, false
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("dashboard cache entry corrupt", "error", err, "key", key)
		return Stats{}, false
	}
	return stats, true
}

func (s *Service) toCache(ctx context.Context, key string, stats Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", "error", err, "key", key)
	}
}

func cacheKey(providerID string) string {
	return "dashboard:stats:" + providerID
}
