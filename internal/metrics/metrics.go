package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcome labels.
const (
	OutcomeBooked          = "booked"
	OutcomeInvalid         = "invalid_request"
	OutcomeNotFound        = "not_found"
	OutcomeWindowClosed    = "sales_window_closed"
	OutcomeLimitExceeded   = "per_user_limit_exceeded"
	OutcomeSoldOut         = "sold_out"
	OutcomeInvalidAttendee = "invalid_attendee"
	OutcomeStorageFailure  = "storage_failure"
)

var (
	BookingAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventhive_booking_attempts_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	TicketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventhive_tickets_sold_total",
			Help: "Tickets committed by successful bookings",
		},
	)

	BookingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventhive_booking_duration_seconds",
			Help:    "Booking transaction latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	PaymentResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventhive_payment_results_total",
			Help: "Payment results applied to pending bookings",
		},
		[]string{"status"},
	)
)

// ObserveBooking records one booking attempt.
func ObserveBooking(outcome string, tickets int, elapsed time.Duration) {
	BookingAttempts.WithLabelValues(outcome).Inc()
	BookingDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == OutcomeBooked {
		TicketsSold.Add(float64(tickets))
	}
}
