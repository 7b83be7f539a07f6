package viomi

import (
	"context"
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests metrics collected during refresh and commands.
func TestMetrics(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	for _, c := range m.Collectors() {
		require.NoError(t, reg.Register(c))
	}

	d := newFakeDevice(map[string]interface{}{propBattery: float64(66), propRunState: float64(5),
		propBoxType: float64(1), propIsMop: float64(2)})
	d.fail("set_charge")
	v := NewVacuum(&ConstructVacuum{Name: "Viomi SE", Host: "10.0.0.1", Client: mocks.FakeNewMiioClient(d.handle),
		Logger: mocks.FakeNewLogger(nil), Metrics: m})

	v.Update(context.Background())
	v.ReturnToBase(context.Background())

	assert.Equal(t, float64(2), testutil.ToFloat64(m.rpcCalls.WithLabelValues("10.0.0.1", "get_prop", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rpcCalls.WithLabelValues("10.0.0.1", "set_mop", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rpcCalls.WithLabelValues("10.0.0.1", "set_charge", "error")))
	assert.Equal(t, float64(66), testutil.ToFloat64(m.batteryPercent.WithLabelValues("10.0.0.1", "Viomi SE")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.available.WithLabelValues("10.0.0.1", "Viomi SE")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.activity.WithLabelValues("10.0.0.1", "Viomi SE", "docked")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.activity.WithLabelValues("10.0.0.1", "Viomi SE", "idle")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.mopCorrections.WithLabelValues("10.0.0.1", "Viomi SE")))
}

// Tests that nil metrics are safe.
func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.Nil(t, m.Collectors())
	assert.NotPanics(t, func() {
		m.observeRPC("h", "m", nil)
		m.observeMopCorrection("h", "n")
	})
}
