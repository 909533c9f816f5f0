package hub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/channel"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
)

// wait times between drain attempts after a sink asked to back off
const (
	drainBackoffMin    = 100 * time.Millisecond
	drainBackoffMax    = 5 * time.Second
	drainBackoffFactor = 2
)

var ErrAlreadyStarted = errors.New("hub was already started")

// Hub runs one pipeline: the source feeds the channel, the sink is polled to drain it
type Hub struct {
	source  api.EventDrivenSource
	sink    api.PollableSink
	channel *channel.MemoryChannel

	cancel context.CancelFunc
	done   chan struct{}

	hasStarted bool
	stopOnce   sync.Once

	muxStarted sync.Mutex
}

func NewHub(source api.EventDrivenSource, sink api.PollableSink, ch *channel.MemoryChannel) *Hub {
	if ch == nil {
		ch = channel.NewMemoryChannel(channel.DefaultCapacity, channel.DefaultKeepAlive)
	}

	return &Hub{
		source:  source,
		sink:    sink,
		channel: ch,
		done:    make(chan struct{}),
	}
}

func (h *Hub) Channel() *channel.MemoryChannel {
	return h.channel
}

// Start wires the pipeline, starts the sink before the source and begins draining
func (h *Hub) Start() error {
	h.muxStarted.Lock()
	defer h.muxStarted.Unlock()

	if h.hasStarted {
		return ErrAlreadyStarted
	}

	h.sink.SetChannel(h.channel)
	h.source.SetChannelProcessor(channel.NewProcessor(h.channel))

	if err := h.sink.Start(); err != nil {
		logging.Log().Error("error during sink start:", err)
		return err
	}
	if err := h.source.Start(); err != nil {
		logging.Log().Error("error during source start:", err)
		h.sink.Stop()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.hasStarted = true

	go h.drain(ctx)

	return nil
}

// Shutdown stops the source, the drain loop and the sink, then closes the channel
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		h.muxStarted.Lock()
		started := h.hasStarted
		h.muxStarted.Unlock()

		h.source.Stop()

		if started {
			h.cancel()
			<-h.done
		}

		h.sink.Stop()
		h.channel.Close()

		logging.Log().Debug("hub stopped")
	})
}

func (h *Hub) drain(ctx context.Context) {
	defer close(h.done)

	b := &backoff.Backoff{
		Min:    drainBackoffMin,
		Max:    drainBackoffMax,
		Factor: drainBackoffFactor,
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		status, err := h.sink.Process()
		if err == nil && status == model.StatusReady {
			b.Reset()
			continue
		}

		d := b.Duration()
		if err != nil {
			logging.Log().Debugf("drain failed (attempt %d), retrying in %s: %s", int(b.Attempt()), d, err)
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
