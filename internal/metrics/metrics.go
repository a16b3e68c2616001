package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/pdf-transparency/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	OTPIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "otp_issued_total",
		Help:      "Total OTP challenges issued, by purpose.",
	}, []string{"purpose"})

	OTPVerifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "otp_verified_total",
		Help:      "Total OTP verification attempts, by outcome.",
	}, []string{"outcome"})

	ChallengesPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "challenges_purged_total",
		Help:      "Expired OTP challenges removed by the background reaper.",
	})

	// Document metrics

	DocumentUploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "document_uploads_total",
		Help:      "Documents successfully ingested.",
	})

	DocumentUploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "docqa",
		Name:      "document_upload_bytes",
		Help:      "Size of uploaded documents.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 9),
	})

	// Inference metrics

	InferenceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docqa",
		Name:      "inference_duration_seconds",
		Help:      "Latency of external inference calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"status"})

	ConversationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "conversations_total",
		Help:      "Question/answer exchanges persisted.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docqa",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docqa",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		OTPIssuedTotal,
		OTPVerifiedTotal,
		ChallengesPurgedTotal,
		DocumentUploadsTotal,
		DocumentUploadBytes,
		InferenceDuration,
		ConversationsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on the
// internal port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
