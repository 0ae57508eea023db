package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "appointease",
			Name:      "booking_created_total",
			Help:      "Count of bookings persisted.",
		},
	)

	bookingDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "appointease",
			Name:      "booking_deleted_total",
			Help:      "Count of bookings removed from the dashboard.",
		},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appointease",
			Name:      "booking_rejected_total",
			Help:      "Count of submissions rejected before persistence, by reason.",
		},
		[]string{"reason"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appointease",
			Name:      "notification_total",
			Help:      "Count of confirmation notifications by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingDeleted, bookingRejected, notifications)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingDeleted() {
	bookingDeleted.Inc()
}

func IncBookingRejected(reason string) {
	bookingRejected.WithLabelValues(reason).Inc()
}

func IncNotification(result string) {
	notifications.WithLabelValues(result).Inc()
}
