package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts requests by route pattern, method and status
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equilibria_http_requests_total",
		Help: "Total HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	// httpRequestDuration tracks request latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "equilibria_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"route", "method"})

	// rateLimitedTotal counts requests rejected by the rate limiter
	rateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equilibria_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"method"})

	// burnoutProbability tracks the distribution of computed probabilities
	burnoutProbability = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "equilibria_burnout_probability_percent",
		Help:    "Burnout probability of scored records",
		Buckets: prometheus.LinearBuckets(10, 10, 9), // 10% to 90%
	})

	// riskScoresTotal counts scoring calls by source and outcome
	riskScoresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equilibria_risk_scores_total",
		Help: "Risk scoring calls by source and result",
	}, []string{"source", "result"})

	// forecastsTotal counts forecast calls by outcome
	forecastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equilibria_forecasts_total",
		Help: "Risk forecasts by result",
	}, []string{"result"})

	// extractionsTotal counts journal extractions by provider
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equilibria_journal_extractions_total",
		Help: "Journal extractions by provider and result",
	}, []string{"provider", "result"})

	// pulseReadingsPruned counts expired pulse readings removed by the retention job
	pulseReadingsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "equilibria_pulse_readings_pruned_total",
		Help: "Expired pulse readings deleted",
	})
)

func observeRequest(route, method string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// observeScore records the outcome of a scoring call made for source.
func observeScore(source string, probability float64, err error) {
	if err != nil {
		riskScoresTotal.WithLabelValues(source, "error").Inc()
		return
	}
	riskScoresTotal.WithLabelValues(source, "ok").Inc()
	burnoutProbability.Observe(probability)
}

func observeExtraction(provider string, err error) {
	extractionsTotal.WithLabelValues(provider, resultLabel(err)).Inc()
}

func observeForecast(err error) {
	forecastsTotal.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
