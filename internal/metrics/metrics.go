package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	directoryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "directory_client",
			Name:      "requests_total",
			Help:      "Directory requests issued, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
	directoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Subsystem: "directory_client",
			Name:      "request_duration_seconds",
			Help:      "Directory request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	stateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session state transitions.",
		},
		[]string{"from", "to"},
	)
	relaySamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "relay",
			Name:      "samples_total",
			Help:      "Distance samples emitted.",
		},
	)
	relaySkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "relay",
			Name:      "objects_skipped_total",
			Help:      "Updated objects dropped for lack of a distance.",
		},
	)
	relayLifecycle = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "relay",
			Name:      "lifecycle_events_total",
			Help:      "Lifecycle notifications, by kind.",
		},
		[]string{"kind"},
	)
	serverRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Subsystem: "directory_server",
			Name:      "requests_total",
			Help:      "Directory server requests.",
		},
		[]string{"method", "status"},
	)
	serverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Subsystem: "directory_server",
			Name:      "request_duration_seconds",
			Help:      "Directory server request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			directoryRequests, directoryDuration,
			stateTransitions,
			relaySamples, relaySkipped, relayLifecycle,
			serverRequests, serverDuration,
		)
	})
}

func RecordDirectoryRequest(op, outcome string, duration time.Duration) {
	Register()
	directoryRequests.WithLabelValues(op, outcome).Inc()
	directoryDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func RecordTransition(from, to string) {
	Register()
	stateTransitions.WithLabelValues(from, to).Inc()
}

func RecordSamples(emitted, skipped int) {
	Register()
	relaySamples.Add(float64(emitted))
	relaySkipped.Add(float64(skipped))
}

func RecordLifecycle(kind string) {
	Register()
	relayLifecycle.WithLabelValues(kind).Inc()
}

func RecordServerRequest(method string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	serverRequests.WithLabelValues(method, statusLabel).Inc()
	serverDuration.WithLabelValues(method, statusLabel).Observe(duration.Seconds())
}
