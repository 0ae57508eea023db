package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated)
	IncBookingCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingCreated))

	IncBookingRejected("slot_required")
	IncBookingRejected("slot_required")
	assert.Equal(t, float64(2), testutil.ToFloat64(bookingRejected.WithLabelValues("slot_required")))

	IncNotification("failed")
	assert.Equal(t, float64(1), testutil.ToFloat64(notifications.WithLabelValues("failed")))
}
