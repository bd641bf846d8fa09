package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "checkin", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "checkin", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "checkin", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	BookingSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "checkin", Name: "booking_submissions_total", Help: "Booking submissions by outcome."},
		[]string{"outcome"}, // accepted|invalid|unavailable|not_found|error
	)
	BookingConfirmations = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "checkin", Name: "booking_confirmations_total", Help: "Bookings that reached the confirmed phase."},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "checkin", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter."},
		[]string{"route"},
	)
)

// NewMetricsServer serves reg on /metrics at addr.
func NewMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve starts a dedicated metrics listener; an empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil // disabled
	}
	srv := NewMetricsServer(addr, reg)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, CacheEvents, BookingSubmissions, BookingConfirmations, RateLimited)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveSubmission(outcome string) {
	BookingSubmissions.WithLabelValues(outcome).Inc()
}

func ObserveConfirmation() { BookingConfirmations.Inc() }

func ObserveRateLimited(route string) {
	RateLimited.WithLabelValues(route).Inc()
}
