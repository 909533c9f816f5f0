package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
)

// SinkCounter tracks the activity of one sink
type SinkCounter struct {
	name string

	running            atomic.Bool
	drainAttempts      atomic.Int64
	drainSuccesses     atomic.Int64
	connectionsCreated atomic.Int64
	connectionsClosed  atomic.Int64

	attempts  prometheus.Counter
	successes prometheus.Counter
	created   prometheus.Counter
	closed    prometheus.Counter
}

var _ api.SinkCounter = (*SinkCounter)(nil)

func NewSinkCounter(name string) *SinkCounter {
	labels := prometheus.Labels{labelName: name}
	return &SinkCounter{
		name:      name,
		attempts:  sinkDrainAttempts.With(labels),
		successes: sinkDrainSuccesses.With(labels),
		created:   sinkConnectionsCreated.With(labels),
		closed:    sinkConnectionsClosed.With(labels),
	}
}

func (c *SinkCounter) Start() {
	c.running.Store(true)
	logging.Log().Debug("sink counter started:", c.name)
}

func (c *SinkCounter) Stop() {
	c.running.Store(false)
	logging.Log().Debugf("sink counter stopped: %s attempts=%d successes=%d",
		c.name, c.drainAttempts.Load(), c.drainSuccesses.Load())
}

func (c *SinkCounter) IncrementEventDrainAttemptCount() {
	c.drainAttempts.Add(1)
	c.attempts.Inc()
}

func (c *SinkCounter) IncrementEventDrainSuccessCount() {
	c.drainSuccesses.Add(1)
	c.successes.Inc()
}

func (c *SinkCounter) IncrementConnectionCreatedCount() {
	c.connectionsCreated.Add(1)
	c.created.Inc()
}

func (c *SinkCounter) IncrementConnectionClosedCount() {
	c.connectionsClosed.Add(1)
	c.closed.Inc()
}

func (c *SinkCounter) Name() string {
	return c.name
}

func (c *SinkCounter) IsRunning() bool {
	return c.running.Load()
}

func (c *SinkCounter) EventDrainAttemptCount() int64 {
	return c.drainAttempts.Load()
}

func (c *SinkCounter) EventDrainSuccessCount() int64 {
	return c.drainSuccesses.Load()
}

func (c *SinkCounter) ConnectionCreatedCount() int64 {
	return c.connectionsCreated.Load()
}

func (c *SinkCounter) ConnectionClosedCount() int64 {
	return c.connectionsClosed.Load()
}
