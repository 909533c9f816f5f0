package source

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jpillora/sizestr"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/metrics"
	"github.com/wsbridge/wsbridge-go/model"
	"github.com/wsbridge/wsbridge-go/util"
	"github.com/wsbridge/wsbridge-go/ws"
)

const (
	connectionLostTimeout = 10 * time.Second

	// queued callbacks before the client read loop has to wait for the owner
	eventQueueSize = 256
)

var (
	ErrNotConfigured  = errors.New("source is not configured")
	ErrNoProcessor    = errors.New("channel processor is not set")
	ErrAlreadyRunning = errors.New("source is running")
)

// Source receives websocket text frames and hands every frame as an event to the
// channel processor. Lost connections are re-established after the retry delay.
//
// Client callbacks, the reconnect timer and Stop only enqueue events, one owner
// goroutine processes them and holds the client exclusively.
type Source struct {
	name    string
	counter api.SourceCounter

	processor api.ChannelProcessor
	config    *config.SourceConfig
	endpoint  *url.URL
	builder   *ws.ClientBuilder

	state model.SourceState

	events    chan ownerEvent
	quit      chan struct{}
	reconnect *util.TimerTask

	// owned by the run goroutine
	client   *ws.Client
	current  *attempt
	attempts uint64

	mux sync.Mutex
}

var _ api.EventDrivenSource = (*Source)(nil)

// NewSource creates an unconfigured source, a nil counter selects a metrics.SourceCounter
func NewSource(name string, counter api.SourceCounter) *Source {
	if counter == nil {
		counter = metrics.NewSourceCounter(name)
	}

	return &Source{
		name:    name,
		counter: counter,
		state:   model.SourceStateIdle,
	}
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Counter() api.SourceCounter {
	return s.counter
}

func (s *Source) State() model.SourceState {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.state
}

func (s *Source) setState(state model.SourceState) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.state != state {
		logging.Log().Debugf("%s: %s -> %s", s.name, s.state, state)
	}
	s.state = state
}

// Endpoint returns the endpoint connections are made to, nil if not configured
func (s *Source) Endpoint() *url.URL {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.endpoint == nil {
		return nil
	}
	endpoint := *s.endpoint
	return &endpoint
}

func (s *Source) SetChannelProcessor(processor api.ChannelProcessor) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.processor = processor
}

// Configure parses the properties and prepares the client builder.
// An invalid endpoint is logged and returned, a later Start fails with ErrNotConfigured.
func (s *Source) Configure(props map[string]string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.state.IsRunning() || s.state == model.SourceStateStopping {
		return ErrAlreadyRunning
	}

	cfg := config.NewSourceConfig(config.Properties(props))
	s.config = cfg
	s.builder = nil
	s.endpoint = nil

	endpoint, err := cfg.EndpointURL()
	if err != nil {
		logging.Log().Errorf("%s: invalid endpoint %q: %s", s.name, cfg.RawEndpoint(), err)
		return err
	}

	builder := ws.NewClientBuilder().SetHTTPCookies(cfg.Cookies())
	if cfg.SSLEnabled() {
		if endpoint.Scheme == "ws" {
			logging.Log().Debugf("%s: ssl enabled, using wss for %s", s.name, endpoint.Host)
			endpoint.Scheme = "wss"
		}
		builder.SetTLSConfig(s.tlsConfig(cfg))
	}
	builder.SetEndpoint(endpoint)

	s.endpoint = endpoint
	s.builder = builder

	logging.Log().Debugf("%s: configured for %s, retry delay %s", s.name, endpoint.Redacted(), cfg.RetryDelay())
	return nil
}

// keystore configuration when type and path are set, the platform default otherwise
func (s *Source) tlsConfig(cfg *config.SourceConfig) *tls.Config {
	ks := cfg.KeyStore()
	if ks.Type == "" || ks.Path == "" {
		return cert.DefaultTLSConfig(cfg.TrustPolicy())
	}

	tlsConfig, err := cert.NewTLSConfig(ks, cfg.TrustPolicy())
	if err != nil {
		logging.Log().Errorf("%s: keystore unusable, falling back to default tls: %s", s.name, err)
		return cert.DefaultTLSConfig(cfg.TrustPolicy())
	}
	return tlsConfig
}

// Start connects and arms the reconnect timer, it returns while connecting
func (s *Source) Start() error {
	s.mux.Lock()
	if s.state.IsRunning() || s.state == model.SourceStateStopping {
		s.mux.Unlock()
		return nil
	}
	if s.builder == nil {
		s.state = model.SourceStateErrored
		s.mux.Unlock()
		logging.Log().Errorf("%s: cannot start, %s", s.name, ErrNotConfigured)
		return ErrNotConfigured
	}
	if s.processor == nil {
		s.state = model.SourceStateErrored
		s.mux.Unlock()
		logging.Log().Errorf("%s: cannot start, %s", s.name, ErrNoProcessor)
		return ErrNoProcessor
	}

	s.state = model.SourceStateStarting
	s.events = make(chan ownerEvent, eventQueueSize)
	s.quit = make(chan struct{})
	events, quit := s.events, s.quit
	s.reconnect = util.NewTimerTask(func() {
		s.enqueueTo(events, quit, ownerEvent{kind: eventReconnect})
	})
	// the queue is fresh, the first connect cannot block
	events <- ownerEvent{kind: eventReconnect}
	s.reconnect.Schedule(s.config.RetryDelay())
	s.mux.Unlock()

	logging.Log().Info(s.name, "starting, endpoint", s.endpoint.Redacted())
	s.counter.Start()

	go s.run(events, quit)

	return nil
}

// Stop closes the connection and cancels reconnects, it is safe to call repeatedly
func (s *Source) Stop() {
	s.mux.Lock()
	if !s.state.IsRunning() {
		if s.state == model.SourceStateIdle {
			s.state = model.SourceStateStopped
		}
		s.mux.Unlock()
		return
	}
	s.state = model.SourceStateStopping
	events, quit, reconnect := s.events, s.quit, s.reconnect
	s.mux.Unlock()

	logging.Log().Info(s.name, "stopping")
	reconnect.Cancel()

	done := make(chan struct{})
	s.enqueueTo(events, quit, ownerEvent{kind: eventStop, done: done})
	<-done
}

func (s *Source) enqueue(ev ownerEvent) {
	s.mux.Lock()
	events, quit := s.events, s.quit
	s.mux.Unlock()

	s.enqueueTo(events, quit, ev)
}

func (s *Source) enqueueTo(events chan ownerEvent, quit chan struct{}, ev ownerEvent) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-quit:
		if ev.done != nil {
			close(ev.done)
		}
	}
}

// the owner goroutine
func (s *Source) run(events chan ownerEvent, quit chan struct{}) {
	defer close(quit)

	for ev := range events {
		switch ev.kind {
		case eventOpen:
			s.onOpen(ev.attempt)
		case eventMessage:
			s.onMessage(ev.attempt, ev.text)
		case eventClose:
			s.onClose(ev.attempt, ev.code)
		case eventError:
			s.onError(ev.err)
		case eventReconnect:
			s.openConnection()
		case eventStop:
			s.stop()
			close(ev.done)
			return
		}
	}
}

// opens a new connection while running and without a live client
func (s *Source) openConnection() {
	if !s.State().IsRunning() {
		return
	}
	if s.client != nil && !s.client.IsClosed() {
		return
	}

	s.attempts++
	a := &attempt{id: s.attempts}
	s.attach(s.builder, a)

	client := s.builder.Build()
	client.SetReuseAddr(true)
	client.SetTCPNoDelay(true)
	client.SetConnectionLostTimeout(connectionLostTimeout)

	s.client = client
	s.current = a

	if err := client.Connect(); err != nil {
		logging.Log().Errorf("%s: connect failed: %s", s.name, err)
		s.setState(model.SourceStateDisconnected)
		s.scheduleReconnect()
		return
	}

	logging.Log().Debugf("%s: connecting to %s (attempt %d)", s.name, s.endpoint.Redacted(), a.id)
	s.counter.SetOpenConnectionCount(1)
	s.setState(model.SourceStateConnecting)
}

func (s *Source) onOpen(a *attempt) {
	if a != s.current {
		return
	}

	logging.Log().Info(s.name, "connected to", s.endpoint.Redacted())
	s.setState(model.SourceStateConnected)

	if !s.client.IsOpen() || !s.config.HasInitMessage() {
		return
	}

	message := s.config.InitMessage()
	if err := s.client.Send(message); err != nil {
		logging.Log().Errorf("%s: sending init message failed: %s", s.name, err)
		return
	}
	logging.Log().Debugf("%s: init message sent (%s)", s.name, sizestr.ToString(int64(len(message))))
}

func (s *Source) onMessage(a *attempt, text string) {
	if a != s.current {
		logging.Log().Debugf("%s: dropping message of a previous connection", s.name)
		return
	}

	s.counter.IncrementEventReceivedCount()

	s.mux.Lock()
	processor := s.processor
	s.mux.Unlock()
	if processor == nil {
		logging.Log().Errorf("%s: %s, dropping event", s.name, ErrNoProcessor)
		return
	}

	event := model.NewEvent([]byte(text))
	if err := processor.ProcessEvent(event); err != nil {
		logging.Log().Errorf("%s: event of %s rejected: %s", s.name, sizestr.ToString(int64(len(text))), err)
		return
	}

	s.counter.IncrementEventAcceptedCount()
}

func (s *Source) onClose(a *attempt, code int) {
	logging.Log().Infof("%s: connection closed with code %d", s.name, code)

	if a != s.current || !s.State().IsRunning() {
		return
	}

	s.counter.SetOpenConnectionCount(0)
	s.setState(model.SourceStateDisconnected)
	s.scheduleReconnect()
}

func (s *Source) onError(err error) {
	logging.Log().Errorf("%s: websocket error: %s", s.name, err)
}

// exactly one reconnect is pending, it fires retryDelay from now
func (s *Source) scheduleReconnect() {
	delay := s.config.RetryDelay()
	s.reconnect.Reschedule(delay)
	logging.Log().Debug(s.name, "reconnecting in", delay)
}

func (s *Source) stop() {
	s.reconnect.Cancel()

	if s.client != nil && !s.client.IsClosed() {
		s.client.Close()
	}
	s.client = nil
	s.current = nil

	s.counter.SetOpenConnectionCount(0)
	s.counter.Stop()
	s.setState(model.SourceStateStopped)

	logging.Log().Info(s.name, "stopped")
}

func (s *Source) String() string {
	return fmt.Sprintf("source %s (%s)", s.name, s.State())
}
