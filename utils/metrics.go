package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics counts booking outcomes and availability write contention.
// A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	bookings          *prometheus.CounterVec
	availabilityRetry prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "halo",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		availabilityRetry: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "halo",
			Subsystem: "booking",
			Name:      "availability_version_conflicts_total",
			Help:      "Availability writes that lost the version check and were retried",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookings, m.availabilityRetry)
	return m
}

// ObserveBooking records one booking attempt. A nil err counts as "booked",
// anything else under its error kind.
func (m *BookingMetrics) ObserveBooking(err error) {
	if m == nil {
		return
	}
	outcome := "booked"
	if err != nil {
		outcome = string(KindOf(err))
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveAvailabilityConflict() {
	if m == nil {
		return
	}
	m.availabilityRetry.Inc()
}

// HTTPMetrics tracks request latency per route.
type HTTPMetrics struct {
	latency *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "halo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.latency)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(method, route, status).Observe(seconds)
}
