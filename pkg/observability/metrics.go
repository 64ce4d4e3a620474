package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/tmsim/pkg/domain"
)

// OutcomeOK labels successful conversions; failures use domain.ErrorKind.
const OutcomeOK = "ok"

// Metrics holds the converter collectors.
type Metrics struct {
	Conversions  *prometheus.CounterVec
	Duration     prometheus.Histogram
	Rules        prometheus.Histogram
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_conversions_total",
				Help: "Total number of conversions by output format and outcome",
			},
			[]string{"format", "outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tmsim_conversion_duration_seconds",
				Help:    "Duration of conversions, compile and encode",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
		Rules: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tmsim_machine_rules",
				Help:    "Number of rules in successfully converted machines",
				Buckets: prometheus.ExponentialBuckets(1, 4, 6),
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_cache_lookups_total",
				Help: "Document cache lookups by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.Conversions, m.Duration, m.Rules, m.CacheLookups)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			outcome := OutcomeOK
			if e.Err != nil {
				outcome = domain.ErrorKind(e.Err)
			}
			format := e.Format
			if format == "" {
				format = "none"
			}
			m.Conversions.WithLabelValues(format, outcome).Inc()
			m.Duration.Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.Rules.Observe(float64(e.Rules))
			}
		},
		OnCacheLookup: func(ctx context.Context, e *domain.CacheEvent) {
			result := "miss"
			if e.Hit {
				result = "hit"
			}
			m.CacheLookups.WithLabelValues(result).Inc()
		},
	}
}

// Chain combines hooks so several observers see every event.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			for _, h := range hooks {
				if h.OnConvert != nil {
					h.OnConvert(ctx, e)
				}
			}
		},
		OnCacheLookup: func(ctx context.Context, e *domain.CacheEvent) {
			for _, h := range hooks {
				if h.OnCacheLookup != nil {
					h.OnCacheLookup(ctx, e)
				}
			}
		},
	}
}
