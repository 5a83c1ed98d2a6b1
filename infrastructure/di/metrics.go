package di

import (
	"time"

	"skincare-backend/application/queries/bus"
	"skincare-backend/pkg/observability"
)

// busMetrics reports query bus measurements to the Prometheus collector
type busMetrics struct {
	collector *observability.Collector
}

func newBusMetrics(collector *observability.Collector) *busMetrics {
	return &busMetrics{collector: collector}
}

// StartTimer implements bus.Metrics
func (m *busMetrics) StartTimer(metric, label string) bus.Timer {
	return &queryTimer{
		collector: m.collector,
		metric:    metric,
		label:     label,
		start:     time.Now(),
	}
}

// Increment implements bus.Metrics
func (m *busMetrics) Increment(metric, label string) {
	m.collector.IncrementCounter(metric, map[string]string{"query": label})
}

type queryTimer struct {
	collector *observability.Collector
	metric    string
	label     string
	start     time.Time
}

// Stop implements bus.Timer
func (t *queryTimer) Stop() {
	t.collector.RecordDuration(t.metric, time.Since(t.start), map[string]string{"query": t.label})
}
