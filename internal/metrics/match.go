package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching Prometheus metrics.
var (
	MatchRankingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hoodmatch",
			Name:      "match_rankings_total",
			Help:      "Total number of neighborhood rankings computed",
		},
	)

	MatchTopScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hoodmatch",
			Name:      "match_top_score",
			Help:      "Score of the best-ranked neighborhood per ranking",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		},
	)
)

var matchMetricsRegistered bool

// RegisterMatchMetrics registers Prometheus matching metrics. Must be called once from main.
func RegisterMatchMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRankingsTotal)
	prometheus.MustRegister(MatchTopScore)
	matchMetricsRegistered = true
}

// MatchObserver records ranking outcomes into the matching metrics.
type MatchObserver struct{}

// ObserveMatch implements match.Observer.
func (MatchObserver) ObserveMatch(results int, topScore float64) {
	MatchRankingsTotal.Inc()
	if results > 0 {
		MatchTopScore.Observe(topScore)
	}
}
