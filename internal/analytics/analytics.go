// Package analytics records page views, interaction events, client errors
// and performance measurements. Counters are exported in the Prometheus
// text format; the configured measurement id is handed to the page so the
// browser can report to the hosted analytics product as well.
package analytics

import (
	"math"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/config"
)

// Event categories and actions used by the Track helpers.
const (
	CategoryNavigation = "navigation"
	CategoryEngagement = "engagement"
	CategoryErrors     = "errors"
	CategoryMetrics    = "metrics"

	ActionNavigate    = "navigate"
	ActionContact     = "contact"
	ActionDownload    = "download"
	ActionError       = "error"
	ActionPerformance = "performance"
)

// Event is a single user interaction.
type Event struct {
	Action   string  `json:"action"`
	Category string  `json:"category"`
	Label    string  `json:"label,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// Metric is a client performance measurement such as LCP or CLS.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Service is the analytics sink. It is safe for concurrent use. A closed
// Service drops everything.
type Service struct {
	logger        *zap.Logger
	measurementID string
	enabled       bool
	dev           bool
	closed        atomic.Bool

	registry    *prometheus.Registry
	pageViews   *prometheus.CounterVec
	events      *prometheus.CounterVec
	navigation  *prometheus.CounterVec
	contacts    *prometheus.CounterVec
	downloads   *prometheus.CounterVec
	errors      prometheus.Counter
	performance *prometheus.HistogramVec
}

// New creates a Service with its own registry.
func New(cfg config.AnalyticsConfig, dev bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		logger:        logger.Named("analytics"),
		measurementID: cfg.MeasurementID,
		enabled:       cfg.Enabled,
		dev:           dev,
		registry:      prometheus.NewRegistry(),
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "page_views_total",
			Help:      "Page views by route.",
		}, []string{"path"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "events_total",
			Help:      "Interaction events by category and action.",
		}, []string{"category", "action"}),
		navigation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "navigation_total",
			Help:      "Section navigations by target section.",
		}, []string{"section"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_total",
			Help:      "Contact attempts by method.",
		}, []string{"method"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "downloads_total",
			Help:      "File downloads by type.",
		}, []string{"type"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "errors_total",
			Help:      "Errors reported by the page or recovered by the server.",
		}),
		performance: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "web_vitals",
			Help:      "Client performance measurements by metric name.",
			Buckets:   []float64{0.01, 0.1, 0.25, 50, 100, 250, 500, 1000, 2500, 4000, 10000},
		}, []string{"name"}),
	}
	s.registry.MustRegister(
		s.pageViews, s.events, s.navigation, s.contacts, s.downloads, s.errors, s.performance,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// MeasurementID returns the browser analytics id, or "" when browser
// reporting should be left out of the page.
func (s *Service) MeasurementID() string {
	if !s.enabled || s.dev {
		return ""
	}
	return s.measurementID
}

// Registry exposes the underlying registry.
func (s *Service) Registry() *prometheus.Registry { return s.registry }

// Handler serves the metrics endpoint.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// TrackPageView counts a view of path. Callers pass the route pattern, not
// the raw URL, to keep label cardinality bounded.
func (s *Service) TrackPageView(path string) {
	if s.closed.Load() {
		return
	}
	s.pageViews.WithLabelValues(path).Inc()
	s.logger.Debug("page view", zap.String("path", path))
}

// TrackEvent counts a generic event.
func (s *Service) TrackEvent(e Event) {
	if s.closed.Load() {
		return
	}
	s.events.WithLabelValues(e.Category, e.Action).Inc()
	s.logger.Debug("event",
		zap.String("category", e.Category),
		zap.String("action", e.Action),
		zap.String("label", e.Label),
		zap.Float64("value", e.Value),
	)
}

// TrackNavigation records a jump to a section.
func (s *Service) TrackNavigation(section string) {
	if s.closed.Load() {
		return
	}
	s.navigation.WithLabelValues(section).Inc()
	s.TrackEvent(Event{Action: ActionNavigate, Category: CategoryNavigation, Label: section})
}

// TrackContact records a contact attempt through method ("form", "email", ...).
func (s *Service) TrackContact(method string) {
	if s.closed.Load() {
		return
	}
	s.contacts.WithLabelValues(method).Inc()
	s.TrackEvent(Event{Action: ActionContact, Category: CategoryEngagement, Label: method})
}

// TrackDownload records a file download of the given type.
func (s *Service) TrackDownload(kind string) {
	if s.closed.Load() {
		return
	}
	s.downloads.WithLabelValues(kind).Inc()
	s.TrackEvent(Event{Action: ActionDownload, Category: CategoryEngagement, Label: kind})
}

// TrackError counts an error and logs it with its context.
func (s *Service) TrackError(err error, fields ...zap.Field) {
	if s.closed.Load() || err == nil {
		return
	}
	s.errors.Inc()
	s.TrackEvent(Event{Action: ActionError, Category: CategoryErrors, Label: err.Error()})
	s.logger.Warn("error tracked", append(fields, zap.Error(err))...)
}

// TrackPerformance observes a performance measurement.
func (s *Service) TrackPerformance(m Metric) {
	if s.closed.Load() || math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return
	}
	s.performance.WithLabelValues(m.Name).Observe(m.Value)
	s.TrackEvent(Event{Action: ActionPerformance, Category: CategoryMetrics, Label: m.Name, Value: math.Round(m.Value)})
	if s.dev {
		s.logger.Info("performance", zap.String("name", m.Name), zap.Float64("value", m.Value), zap.String("unit", m.Unit))
	}
}

// Close stops recording. It is safe to call more than once.
func (s *Service) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		_ = s.logger.Sync()
	}
	return nil
}
