package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// See the metrics initialization below for details.
const (
	namespace = "wsbridge"

	subsystemSource = "source"
	subsystemSink   = "sink"

	labelName = "name"
)

func init() {
	prometheus.MustRegister(sourceEventsReceived)
	prometheus.MustRegister(sourceEventsAccepted)
	prometheus.MustRegister(sourceOpenConnections)
	prometheus.MustRegister(sinkDrainAttempts)
	prometheus.MustRegister(sinkDrainSuccesses)
	prometheus.MustRegister(sinkConnectionsCreated)
	prometheus.MustRegister(sinkConnectionsClosed)
}

var (
	// sourceEventsReceived counts text frames received by a source, labeled by component name.
	sourceEventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSource,
			Name:      "events_received_total",
			Help:      "Total number of websocket messages received.",
		},
		[]string{labelName},
	)

	// sourceEventsAccepted counts events the channel processor accepted.
	// The difference to sourceEventsReceived are rejected events.
	sourceEventsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSource,
			Name:      "events_accepted_total",
			Help:      "Total number of events accepted by the channel processor.",
		},
		[]string{labelName},
	)

	sourceOpenConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSource,
			Name:      "open_connections",
			Help:      "Number of open or opening websocket connections.",
		},
		[]string{labelName},
	)

	// sinkDrainAttempts counts every Process call of a sink, sinkDrainSuccesses the broadcast events.
	sinkDrainAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSink,
			Name:      "drain_attempts_total",
			Help:      "Total number of attempts to take an event from the channel.",
		},
		[]string{labelName},
	)

	sinkDrainSuccesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSink,
			Name:      "drain_successes_total",
			Help:      "Total number of events broadcast to websocket peers.",
		},
		[]string{labelName},
	)

	sinkConnectionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSink,
			Name:      "connections_created_total",
			Help:      "Total number of times the websocket server started listening.",
		},
		[]string{labelName},
	)

	sinkConnectionsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSink,
			Name:      "connections_closed_total",
			Help:      "Total number of times the websocket server was stopped.",
		},
		[]string{labelName},
	)
)
