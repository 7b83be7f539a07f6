package viomi

import (
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects vacuum metrics.
// Nil Metrics is valid and records nothing.
type Metrics struct {
	rpcCalls       *prometheus.CounterVec
	batteryPercent *prometheus.GaugeVec
	activity       *prometheus.GaugeVec
	available      *prometheus.GaugeVec
	mopCorrections *prometheus.CounterVec
}

// NewMetrics constructs vacuum metrics.
func NewMetrics() *Metrics {
	labels := []string{"host", "name"}
	return &Metrics{
		rpcCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viomise_rpc_calls_total",
			Help: "Device RPC calls by method and result",
		}, []string{"host", "method", "result"}),
		batteryPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomise_battery_percent",
			Help: "Battery percentage (0-100)",
		}, labels),
		activity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomise_activity",
			Help: "Vacuum activity (label) derived from run_state",
		}, []string{"host", "name", "activity"}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomise_available",
			Help: "Entity availability (1=available, 0=unavailable)",
		}, labels),
		mopCorrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viomise_mop_corrections_total",
			Help: "set_mop calls issued by the box type consistency check",
		}, labels),
	}
}

// Collectors returns all collectors for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.rpcCalls, m.batteryPercent, m.activity, m.available, m.mopCorrections}
}

func (m *Metrics) observeRPC(host, method string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.rpcCalls.WithLabelValues(host, method, result).Inc()
}

func (m *Metrics) observeState(host, name string, available bool, status enums.VacStatus, battery int, hasBattery bool) {
	if m == nil {
		return
	}

	if available {
		m.available.WithLabelValues(host, name).Set(1)
	} else {
		m.available.WithLabelValues(host, name).Set(0)
	}

	for k := range vacStatusLabels {
		m.activity.WithLabelValues(host, name, k.String()).Set(0)
	}
	m.activity.WithLabelValues(host, name, status.String()).Set(1)

	if hasBattery {
		m.batteryPercent.WithLabelValues(host, name).Set(float64(battery))
	}
}

func (m *Metrics) observeMopCorrection(host, name string) {
	if m == nil {
		return
	}
	m.mopCorrections.WithLabelValues(host, name).Inc()
}

var vacStatusLabels = map[enums.VacStatus]struct{}{
	enums.VacUnknown:   {},
	enums.VacCleaning:  {},
	enums.VacDocked:    {},
	enums.VacIdle:      {},
	enums.VacPaused:    {},
	enums.VacReturning: {},
}
