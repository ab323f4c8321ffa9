package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestScheduleMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScheduleMetrics(reg)

	m.ObserveSlotCreated()
	m.ObserveSlotCreated()
	m.ObserveConflict("overlap")

	if got := testutil.ToFloat64(m.slotsCreated); got != 2 {
		t.Errorf("slots_created_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.conflictTotal.WithLabelValues("overlap")); got != 1 {
		t.Errorf("conflicts_total{overlap} = %v, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var sm *ScheduleMetrics
	var bm *BookingMetrics
	var nm *NotifyMetrics
	var dm *DashboardMetrics

	sm.ObserveSlotCreated()
	sm.ObserveConflict("overlap")
	bm.ObserveBooking("boarding", "ok")
	nm.ObserveEmail("customer", "sent")
	dm.ObserveQuery("total", 0.1)
}

func TestBookingMetricsLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking("transport", "conflict")
	if got := testutil.ToFloat64(m.bookingsTotal.WithLabelValues("transport", "conflict")); got != 1 {
		t.Errorf("bookings_total{transport,conflict} = %v, want 1", got)
	}
}
