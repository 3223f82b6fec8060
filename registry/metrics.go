package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	observationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "castor_observations_total",
		Help: "Samples folded into the registry.",
	})

	parseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "castor_parse_failures_total",
		Help: "Sampled bodies rejected because they were not valid JSON.",
	})

	trackedSources = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "castor_tracked_sources",
		Help: "Source keys currently tracked.",
	})
)
