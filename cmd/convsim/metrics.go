package main

import "github.com/prometheus/client_golang/prometheus"

// metrics groups the counters and histogram this demo driver exposes when
// a metrics address is configured. newMetrics registers them on every run,
// on a private registry, so no run touches the default registry.
type metrics struct {
	pushesTotal      prometheus.Counter
	stepsTotal       prometheus.Counter
	convolveDuration prometheus.Histogram
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		pushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convsim_pushes_total",
			Help: "Number of kernel/flux coefficient pushes issued.",
		}),
		stepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convsim_steps_total",
			Help: "Number of simulation steps completed.",
		}),
		convolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "convsim_convolve_duration_seconds",
			Help:    "Wall-clock time spent in the per-step convolution.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(m.pushesTotal, m.stepsTotal, m.convolveDuration)
	return m
}
