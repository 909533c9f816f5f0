package sink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jpillora/sizestr"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/metrics"
	"github.com/wsbridge/wsbridge-go/model"
	"github.com/wsbridge/wsbridge-go/ws"
)

const stopTimeout = 5 * time.Second

var (
	ErrNotConfigured = errors.New("sink is not configured")
	ErrNoChannel     = errors.New("channel is not set")
)

// Sink serves a websocket endpoint and broadcasts every event taken from the
// channel as a text frame to all connected peers
type Sink struct {
	name    string
	counter api.SinkCounter

	channel api.Channel
	config  *config.SinkConfig
	builder *ws.ServerBuilder
	server  *ws.Server

	state model.SinkState

	mux sync.Mutex
}

var _ api.PollableSink = (*Sink)(nil)

// NewSink creates an unconfigured sink, a nil counter selects a metrics.SinkCounter
func NewSink(name string, counter api.SinkCounter) *Sink {
	if counter == nil {
		counter = metrics.NewSinkCounter(name)
	}

	return &Sink{
		name:    name,
		counter: counter,
		state:   model.SinkStateIdle,
	}
}

func (s *Sink) Name() string {
	return s.name
}

func (s *Sink) Counter() api.SinkCounter {
	return s.counter
}

func (s *Sink) State() model.SinkState {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.state
}

// Addr returns the bound address while listening
func (s *Sink) Addr() net.Addr {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Addr()
}

// PeerCount returns the number of connected peers
func (s *Sink) PeerCount() int {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.server == nil {
		return 0
	}
	return s.server.PeerCount()
}

func (s *Sink) SetChannel(channel api.Channel) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.channel = channel
}

// Configure prepares the server. A keystore that cannot be loaded is logged and
// the server is served without TLS.
func (s *Sink) Configure(props map[string]string) error {
	cfg := config.NewSinkConfig(config.Properties(props))

	builder := ws.NewServerBuilder().
		SetBindAddress(cfg.Address()).
		OnOpen(s.onPeerOpen).
		OnClose(s.onPeerClose).
		OnError(s.onPeerError).
		SetRequestLogging(cfg.RequestLogging())

	if cfg.SSLEnabled() {
		tlsConfig, err := cert.NewTLSConfig(cfg.KeyStore(), cfg.TrustPolicy())
		if err != nil {
			logging.Log().Errorf("%s: tls unavailable, serving without: %s", s.name, err)
		} else {
			builder.SetTLSConfig(tlsConfig)
		}
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	s.config = cfg
	s.builder = builder

	logging.Log().Debugf("%s: configured for %s", s.name, cfg.Address())
	return nil
}

// Start binds the configured address, bind failures are returned
func (s *Sink) Start() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.builder == nil {
		return ErrNotConfigured
	}
	if s.server != nil {
		return nil
	}

	server, err := s.builder.Listen()
	if err != nil {
		logging.Log().Errorf("%s: listening on %s failed: %s", s.name, s.config.Address(), err)
		return err
	}

	s.server = server
	s.state = model.SinkStateListening
	s.counter.Start()
	s.counter.IncrementConnectionCreatedCount()

	scheme := "ws"
	if server.TLSConfig() != nil {
		scheme = "wss"
	}
	logging.Log().Infof("%s: listening on %s://%s", s.name, scheme, server.Addr())

	return nil
}

// Stop closes the server and all peers, it is safe to call repeatedly
func (s *Sink) Stop() {
	s.mux.Lock()
	server := s.server
	s.server = nil
	if server != nil {
		s.state = model.SinkStateStopped
	}
	s.mux.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logging.Log().Errorf("%s: stopping server: %s", s.name, err)
	}

	s.counter.IncrementConnectionClosedCount()
	s.counter.Stop()
	logging.Log().Info(s.name, "stopped")
}

// Process takes one event from the channel and broadcasts it.
// Without a running server the channel is left untouched and StatusBackoff is returned.
func (s *Sink) Process() (model.Status, error) {
	s.counter.IncrementEventDrainAttemptCount()

	s.mux.Lock()
	server, channel := s.server, s.channel
	s.mux.Unlock()

	if server == nil {
		return model.StatusBackoff, nil
	}
	if channel == nil {
		return model.StatusBackoff, ErrNoChannel
	}

	tx := channel.Transaction()
	tx.Begin()

	event, err := tx.Take()
	if err != nil {
		return s.rollback(tx, fmt.Errorf("take failed: %w", err))
	}

	if event != nil {
		peers := server.Broadcast(string(event.Body))
		s.counter.IncrementEventDrainSuccessCount()
		logging.Log().Tracef("%s: broadcast %s to %d peers", s.name, sizestr.ToString(int64(len(event.Body))), peers)
	}

	if err := tx.Commit(); err != nil {
		return s.rollback(tx, fmt.Errorf("commit failed: %w", err))
	}
	tx.Close()

	return model.StatusReady, nil
}

func (s *Sink) rollback(tx api.Transaction, cause error) (model.Status, error) {
	if err := tx.Rollback(); err != nil {
		logging.Log().Debugf("%s: rollback failed: %s", s.name, err)
	}
	tx.Close()

	logging.Log().Errorf("%s: %s", s.name, cause)
	return model.StatusBackoff, cause
}

func (s *Sink) onPeerOpen(peer *ws.Peer, _ *http.Request) {
	logging.Log().Debugf("%s: peer %s connected", s.name, peer.RemoteAddr())
}

func (s *Sink) onPeerClose(peer *ws.Peer, code int) {
	logging.Log().Debugf("%s: peer %s disconnected with code %d", s.name, peer.RemoteAddr(), code)
}

func (s *Sink) onPeerError(peer *ws.Peer, err error) {
	logging.Log().Errorf("%s: peer %s failed: %s", s.name, peer.RemoteAddr(), err)
	peer.Close()
}
