package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "rental")

	m.RecordHTTPRequest("GET", "/api/v1/stores/{storeId}/products/{productId}", 200, 10*time.Millisecond)
	m.AddAvailabilityWarnings(2)
	m.AddAvailabilityWarnings(0)
	m.IncInventoryGuardRejection("unit_status_conflict")
	m.IncReservationsCreated()
	m.IncProductCache(true)
	m.IncProductCache(false)
	m.IncProductCache(false)

	assert.Equal(t, 1.0, counterValue(t, m.httpRequestsTotal.WithLabelValues("rental", "GET", "/api/v1/stores/{storeId}/products/{productId}", "200")))
	assert.Equal(t, 2.0, counterValue(t, m.availabilityWarnings.WithLabelValues("rental")))
	assert.Equal(t, 1.0, counterValue(t, m.inventoryGuardRejections.WithLabelValues("rental", "unit_status_conflict")))
	assert.Equal(t, 1.0, counterValue(t, m.reservationsCreated.WithLabelValues("rental")))
	assert.Equal(t, 2.0, counterValue(t, m.productCacheRequests.WithLabelValues("rental", "miss")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveDBQuery("select", "ok", time.Millisecond)
		m.AddAvailabilityWarnings(1)
		m.IncInventoryGuardRejection("x")
		m.IncReservationsCreated()
		m.IncProductCache(true)
	})
}
