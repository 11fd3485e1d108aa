package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cpu_scheduler"

// Collector records simulation activity. It is registered on the registry
// handed to NewCollector so tests can use an isolated one.
type Collector struct {
	simulations     *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	simulatedTime   *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	averageWaitTime *prometheus.GaugeVec
}

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

func NewCollector(registerer prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Simulations requested, by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Wall-clock time spent computing a schedule.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"algorithm"}),
		simulatedTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulated_time_units",
			Help:      "Total simulated execution time of computed schedules.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"algorithm"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups, by result.",
		}, []string{"result"}),
		averageWaitTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_average_waiting_time",
			Help:      "Average waiting time of the most recent schedule per algorithm.",
		}, []string{"algorithm"}),
	}

	for _, collector := range []prometheus.Collector{c.simulations, c.duration, c.simulatedTime, c.cacheLookups, c.averageWaitTime} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveSimulation(algorithm, outcome string, seconds float64) {
	c.simulations.WithLabelValues(algorithm, outcome).Inc()
	if outcome == OutcomeSuccess {
		c.duration.WithLabelValues(algorithm).Observe(seconds)
	}
}

func (c *Collector) ObserveSchedule(algorithm string, totalTime int, averageWaitingTime float64) {
	c.simulatedTime.WithLabelValues(algorithm).Observe(float64(totalTime))
	c.averageWaitTime.WithLabelValues(algorithm).Set(averageWaitingTime)
}

func (c *Collector) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}
