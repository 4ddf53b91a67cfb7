// Package metrics exposes registry activity as Prometheus metrics
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"framedata/internal/domain"
	"framedata/internal/registry"
)

// StatsSource reports the current registry size
type StatsSource interface {
	Stats() registry.Stats
}

// Collector counts registry notifications and reports record gauges. It is a
// registry.Listener and never fails a notification.
type Collector struct {
	registry      *prometheus.Registry
	notifications *prometheus.CounterVec
	logger        *zap.Logger
}

// Ensure Collector implements Listener
var _ registry.Listener = (*Collector)(nil)

// NewCollector creates a collector with its own Prometheus registry. Gauges are
// read from stats at gather time.
func NewCollector(namespace string, stats StatsSource, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logger.With(zap.String("component", "metrics")),
	}

	c.notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of registry notifications by event type",
		},
		[]string{"event"},
	)
	for _, ev := range domain.EventTypes {
		c.notifications.WithLabelValues(string(ev))
	}

	gauge := func(name, help string, value func(registry.Stats) int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help},
			func() float64 { return float64(value(stats.Stats())) },
		)
	}

	c.registry.MustRegister(
		c.notifications,
		gauge("window_records", "Number of live window records",
			func(s registry.Stats) int { return s.Records }),
		gauge("detached_records", "Number of window records in the detached state",
			func(s registry.Stats) int { return s.Detached }),
		gauge("tracked_nodes", "Number of nodes with an attached location",
			func(s registry.Stats) int { return s.Nodes }),
	)
	return c
}

// HandleWindowEvent counts the notification
func (c *Collector) HandleWindowEvent(w *domain.Window, event domain.EventType, rec *registry.WindowRecord) error {
	c.notifications.WithLabelValues(string(event)).Inc()
	return nil
}

// Gatherer returns the underlying Prometheus registry
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile dumps the current metrics in the text exposition format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	c.logger.Info("metrics written", zap.String("path", path))
	return nil
}
