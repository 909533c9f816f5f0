package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
)

// SourceCounter tracks the activity of one source
type SourceCounter struct {
	name string

	running         atomic.Bool
	eventsReceived  atomic.Int64
	eventsAccepted  atomic.Int64
	openConnections atomic.Int64

	received    prometheus.Counter
	accepted    prometheus.Counter
	connections prometheus.Gauge
}

var _ api.SourceCounter = (*SourceCounter)(nil)

func NewSourceCounter(name string) *SourceCounter {
	labels := prometheus.Labels{labelName: name}
	return &SourceCounter{
		name:        name,
		received:    sourceEventsReceived.With(labels),
		accepted:    sourceEventsAccepted.With(labels),
		connections: sourceOpenConnections.With(labels),
	}
}

func (c *SourceCounter) Start() {
	c.running.Store(true)
	logging.Log().Debug("source counter started:", c.name)
}

func (c *SourceCounter) Stop() {
	c.running.Store(false)
	logging.Log().Debugf("source counter stopped: %s received=%d accepted=%d",
		c.name, c.eventsReceived.Load(), c.eventsAccepted.Load())
}

func (c *SourceCounter) IncrementEventReceivedCount() {
	c.eventsReceived.Add(1)
	c.received.Inc()
}

func (c *SourceCounter) IncrementEventAcceptedCount() {
	c.eventsAccepted.Add(1)
	c.accepted.Inc()
}

func (c *SourceCounter) SetOpenConnectionCount(count int64) {
	c.openConnections.Store(count)
	c.connections.Set(float64(count))
}

func (c *SourceCounter) Name() string {
	return c.name
}

func (c *SourceCounter) IsRunning() bool {
	return c.running.Load()
}

func (c *SourceCounter) EventReceivedCount() int64 {
	return c.eventsReceived.Load()
}

func (c *SourceCounter) EventAcceptedCount() int64 {
	return c.eventsAccepted.Load()
}

func (c *SourceCounter) OpenConnectionCount() int64 {
	return c.openConnections.Load()
}
