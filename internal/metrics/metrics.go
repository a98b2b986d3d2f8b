// Package metrics holds the domain Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Upload tracks mobile upload handoffs.
type Upload struct {
	files   prometheus.Counter
	batches *prometheus.CounterVec
}

// Gauges are sampled on scrape.
type Gauges struct {
	ActiveSessions  func() int
	RealtimeClients func() int
}

// NewUpload registers the upload collectors and the sampled gauges on reg.
func NewUpload(reg prometheus.Registerer, g Gauges) (*Upload, error) {
	m := &Upload{
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobile_upload_files_total",
			Help: "Files stored through mobile upload sessions.",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobile_upload_batches_total",
			Help: "Mobile upload requests by outcome.",
		}, []string{"result"}),
	}
	collectors := []prometheus.Collector{m.files, m.batches}
	if g.ActiveSessions != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "upload_sessions_active",
			Help: "Upload sessions issued and not yet consumed or expired.",
		}, func() float64 { return float64(g.ActiveSessions()) }))
	}
	if g.RealtimeClients != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "realtime_clients_connected",
			Help: "Open WebSocket connections.",
		}, func() float64 { return float64(g.RealtimeClients()) }))
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// BatchStored records a successful batch of n files.
func (m *Upload) BatchStored(n int) {
	m.files.Add(float64(n))
	m.batches.WithLabelValues("stored").Inc()
}

// BatchFailed records a batch rejected or aborted with the given reason.
func (m *Upload) BatchFailed(reason string) {
	m.batches.WithLabelValues(reason).Inc()
}
