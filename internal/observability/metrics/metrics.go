package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScheduleMetrics exposes counters for slot management.
type ScheduleMetrics struct {
	slotsCreated  prometheus.Counter
	conflictTotal *prometheus.CounterVec
}

func NewScheduleMetrics(reg prometheus.Registerer) *ScheduleMetrics {
	m := &ScheduleMetrics{
		slotsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vetcare",
			Subsystem: "schedule",
			Name:      "slots_created_total",
			Help:      "Total availability slots created",
		}),
		conflictTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetcare",
			Subsystem: "schedule",
			Name:      "conflicts_total",
			Help:      "Slot mutations rejected locally (overlap, reserved delete)",
		}, []string{"reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotsCreated, m.conflictTotal)
	return m
}

func (m *ScheduleMetrics) ObserveSlotCreated() {
	if m == nil {
		return
	}
	m.slotsCreated.Inc()
}

func (m *ScheduleMetrics) ObserveConflict(reason string) {
	if m == nil {
		return
	}
	m.conflictTotal.WithLabelValues(reason).Inc()
}

// BookingMetrics exposes counters for the booking flow.
type BookingMetrics struct {
	bookingsTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetcare",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking attempts by kind and status",
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal)
	return m
}

func (m *BookingMetrics) ObserveBooking(kind, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(kind, status).Inc()
}

// NotifyMetrics exposes counters for transactional email delivery.
type NotifyMetrics struct {
	emailsTotal *prometheus.CounterVec
}

func NewNotifyMetrics(reg prometheus.Registerer) *NotifyMetrics {
	m := &NotifyMetrics{
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetcare",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total transactional emails by audience and status",
		}, []string{"audience", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.emailsTotal)
	return m
}

func (m *NotifyMetrics) ObserveEmail(audience, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(audience, status).Inc()
}

// DashboardMetrics tracks the aggregator's query latency.
type DashboardMetrics struct {
	queryLatency *prometheus.HistogramVec
}

func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	m := &DashboardMetrics{
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vetcare",
			Subsystem: "dashboard",
			Name:      "query_latency_seconds",
			Help:      "Latency of dashboard count queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"count"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.queryLatency)
	return m
}

func (m *DashboardMetrics) ObserveQuery(count string, seconds float64) {
	if m == nil {
		return
	}
	m.queryLatency.WithLabelValues(count).Observe(seconds)
}
