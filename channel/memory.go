package channel

import (
	"errors"
	"sync"
	"time"

	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
)

const (
	DefaultCapacity  = 100
	DefaultKeepAlive = 3 * time.Second
)

var (
	ErrChannelFull      = errors.New("channel capacity exceeded")
	ErrChannelClosed    = errors.New("channel is closed")
	ErrTransactionState = errors.New("transaction is not open")
)

// MemoryChannel is a bounded in-memory queue of events accessed through transactions
type MemoryChannel struct {
	capacity  int
	keepAlive time.Duration

	queue  []*model.Event
	closed bool
	// closed and replaced whenever the queue changes
	changed chan struct{}

	mux sync.Mutex
}

var _ api.Channel = (*MemoryChannel)(nil)

// NewMemoryChannel creates a channel, values <= 0 select the defaults
func NewMemoryChannel(capacity int, keepAlive time.Duration) *MemoryChannel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}

	return &MemoryChannel{
		capacity:  capacity,
		keepAlive: keepAlive,
		changed:   make(chan struct{}),
	}
}

func (c *MemoryChannel) Transaction() api.Transaction {
	return &memoryTransaction{channel: c}
}

func (c *MemoryChannel) Capacity() int {
	return c.capacity
}

// Len returns the number of committed events not yet taken
func (c *MemoryChannel) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()

	return len(c.queue)
}

// Close wakes all waiting takers, later operations fail with ErrChannelClosed
func (c *MemoryChannel) Close() {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if len(c.queue) > 0 {
		logging.Log().Debugf("channel closed with %d pending events", len(c.queue))
	}
	c.notify()
}

func (c *MemoryChannel) IsClosed() bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.closed
}

// requires c.mux
func (c *MemoryChannel) notify() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// poll removes the head event, or returns a channel signalling the next change
func (c *MemoryChannel) poll() (*model.Event, <-chan struct{}, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.closed {
		return nil, nil, ErrChannelClosed
	}
	if len(c.queue) == 0 {
		return nil, c.changed, nil
	}

	event := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	return event, nil, nil
}

func (c *MemoryChannel) publish(events []*model.Event) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	if len(c.queue)+len(events) > c.capacity {
		return ErrChannelFull
	}
	if len(events) == 0 {
		return nil
	}

	c.queue = append(c.queue, events...)
	c.notify()
	return nil
}

// restore puts taken events back to the head in their original order
func (c *MemoryChannel) restore(events []*model.Event) {
	if len(events) == 0 {
		return
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	queue := make([]*model.Event, 0, len(events)+len(c.queue))
	queue = append(queue, events...)
	c.queue = append(queue, c.queue...)
	c.notify()
}
