package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics exposes counters/gauges/histograms for result triage flows.
type TriageMetrics struct {
	classifiedTotal *prometheus.CounterVec
	overduePending  *prometheus.GaugeVec
	exportTotal     prometheus.Counter
	classifyLatency prometheus.Histogram
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		classifiedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "classified_total",
			Help:      "Total records classified, by kind and overall severity",
		}, []string{"kind", "severity"}),
		overduePending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "overdue_pending",
			Help:      "Pending orders currently past their SLA, by kind",
		}, []string{"kind"}),
		exportTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "csv_exports_total",
			Help:      "Total CSV exports generated",
		}),
		classifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "classify_latency_seconds",
			Help:      "Latency of single-record classification",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.classifiedTotal, m.overduePending, m.exportTotal, m.classifyLatency)
	return m
}

func (m *TriageMetrics) ObserveClassified(kind, severity string) {
	if m == nil {
		return
	}
	m.classifiedTotal.WithLabelValues(kind, severity).Inc()
}

func (m *TriageMetrics) SetOverduePending(kind string, count int) {
	if m == nil {
		return
	}
	m.overduePending.WithLabelValues(kind).Set(float64(count))
}

func (m *TriageMetrics) ObserveExport() {
	if m == nil {
		return
	}
	m.exportTotal.Inc()
}

func (m *TriageMetrics) ObserveClassifyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.classifyLatency.Observe(seconds)
}
