package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTransition(t *testing.T) {
	m := New("test")

	m.RecordTransition("guided_excursion", TransitionCreated)
	m.RecordTransition("guided_excursion", TransitionCreated)
	m.RecordTransition("adventure_package", TransitionPromoted)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("guided_excursion", TransitionCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("adventure_package", TransitionPromoted)))
}

func TestSetAvailability(t *testing.T) {
	m := New("test")

	m.SetAvailability("exp-1", 6, 2)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.availableSlots.WithLabelValues("exp-1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.waitlistLength.WithLabelValues("exp-1")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordTransition("guided_excursion", TransitionCancelled)
		m.RecordWaitlistJoin("guided_excursion")
		m.RecordRejected("no_availability")
		m.SetAvailability("exp-1", 1, 0)
		m.ObserveSweep(0.1)
	})
}

func TestHandler(t *testing.T) {
	m := New("test")
	m.RecordRejected("no_availability")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_reservations_rejected_total{reason="no_availability"} 1`)
}
