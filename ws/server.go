package ws

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/requestlog"
	"github.com/wsbridge/wsbridge-go/logging"
)

// ServerBuilder collects the options of a websocket server
type ServerBuilder struct {
	address        string
	handlers       ServerHandlers
	tlsConfig      *tls.Config
	requestLogging bool
	pingPeriod     time.Duration
}

func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{
		address:    ":0",
		handlers:   DefaultServerHandlers(),
		pingPeriod: DefaultConnectionLostTimeout,
	}
}

// SetBindAddress sets host:port to listen on, port 0 picks a free port
func (b *ServerBuilder) SetBindAddress(address string) *ServerBuilder {
	b.address = address
	return b
}

func (b *ServerBuilder) OnOpen(fn func(*Peer, *http.Request)) *ServerBuilder {
	if fn != nil {
		b.handlers.OnOpen = fn
	}
	return b
}

func (b *ServerBuilder) OnMessage(fn func(*Peer, string)) *ServerBuilder {
	if fn != nil {
		b.handlers.OnMessage = fn
	}
	return b
}

func (b *ServerBuilder) OnClose(fn func(*Peer, int)) *ServerBuilder {
	if fn != nil {
		b.handlers.OnClose = fn
	}
	return b
}

func (b *ServerBuilder) OnError(fn func(*Peer, error)) *ServerBuilder {
	if fn != nil {
		b.handlers.OnError = fn
	}
	return b
}

// SetTLSConfig serves wss when set
func (b *ServerBuilder) SetTLSConfig(config *tls.Config) *ServerBuilder {
	b.tlsConfig = config
	return b
}

// SetRequestLogging logs every upgrade request
func (b *ServerBuilder) SetRequestLogging(on bool) *ServerBuilder {
	b.requestLogging = on
	return b
}

// SetConnectionLostTimeout sets the ping interval for peers, 0 disables it
func (b *ServerBuilder) SetConnectionLostTimeout(timeout time.Duration) *ServerBuilder {
	b.pingPeriod = timeout
	return b
}

// Listen binds the address and serves connections in the background
func (b *ServerBuilder) Listen() (*Server, error) {
	listener, err := net.Listen("tcp", b.address)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener:   listener,
		handlers:   b.handlers,
		pingPeriod: b.pingPeriod,
		peers:      make(map[*Peer]struct{}),
		running:    true,
	}
	if b.tlsConfig != nil {
		s.tlsConfig = b.tlsConfig.Clone()
		listener = tls.NewListener(listener, s.tlsConfig)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	handler := http.Handler(s)
	if b.requestLogging {
		handler = requestlog.Wrap(handler)
	}

	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Log().Debug("starting websocket server on", listener.Addr())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log().Error("websocket server error:", err)
		}
	}()

	return s, nil
}

// Server accepts websocket connections and keeps track of the connected peers
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	upgrader   websocket.Upgrader
	tlsConfig  *tls.Config
	handlers   ServerHandlers
	pingPeriod time.Duration

	peers   map[*Peer]struct{}
	running bool
	wg      sync.WaitGroup

	muxPeers sync.Mutex
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) TLSConfig() *tls.Config {
	return s.tlsConfig
}

func (s *Server) IsRunning() bool {
	s.muxPeers.Lock()
	defer s.muxPeers.Unlock()

	return s.running
}

// Peers returns the currently open peers
func (s *Server) Peers() []*Peer {
	s.muxPeers.Lock()
	defer s.muxPeers.Unlock()

	result := make([]*Peer, 0, len(s.peers))
	for peer := range s.peers {
		result = append(result, peer)
	}
	return result
}

func (s *Server) PeerCount() int {
	s.muxPeers.Lock()
	defer s.muxPeers.Unlock()

	return len(s.peers)
}

// Broadcast queues text for every open peer and returns how many accepted it.
// A peer with a full queue misses this frame.
func (s *Server) Broadcast(text string) int {
	count := 0
	for _, peer := range s.Peers() {
		if err := peer.conn.send(text, false); err != nil {
			logging.Log().Debug(peer.RemoteAddr(), "dropping broadcast:", err)
			continue
		}
		count++
	}
	return count
}

// Stop closes the listener and all peers, waiting for them until ctx is done
func (s *Server) Stop(ctx context.Context) error {
	s.muxPeers.Lock()
	if !s.running {
		s.muxPeers.Unlock()
		return nil
	}
	s.running = false
	s.muxPeers.Unlock()

	err := s.httpServer.Shutdown(ctx)

	for _, peer := range s.Peers() {
		peer.conn.close(CloseGoingAway, "server stopped")
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	return err
}

// HTTP Server callback for handling incoming connection requests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.IsRunning() {
		http.Error(w, "server stopped", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log().Debug("error during connection upgrading:", err)
		return
	}

	peer := &Peer{
		remoteAddr: conn.RemoteAddr(),
		conn:       newConnection(conn, r.RemoteAddr, s.pingPeriod),
	}

	if !s.register(peer) {
		_ = conn.Close()
		return
	}
	defer s.wg.Done()

	peer.conn.run()
	s.handlers.OnOpen(peer, r)

	code := peer.conn.readPump(connectionEvents{
		onMessage: func(text string) { s.handlers.OnMessage(peer, text) },
		onError:   func(err error) { s.handlers.OnError(peer, err) },
	})

	s.unregister(peer)
	s.handlers.OnClose(peer, code)
}

func (s *Server) register(peer *Peer) bool {
	s.muxPeers.Lock()
	defer s.muxPeers.Unlock()

	if !s.running {
		return false
	}
	s.peers[peer] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) unregister(peer *Peer) {
	s.muxPeers.Lock()
	defer s.muxPeers.Unlock()

	delete(s.peers, peer)
}

// Peer is one connection accepted by a Server
type Peer struct {
	remoteAddr net.Addr
	conn       *connection
}

func (p *Peer) RemoteAddr() net.Addr {
	return p.remoteAddr
}

// Send queues a text frame without blocking
func (p *Peer) Send(text string) error {
	return p.conn.send(text, false)
}

func (p *Peer) Close() {
	p.conn.close(CloseNormal, "")
}

func (p *Peer) IsOpen() bool {
	return !p.conn.isConnClosed()
}
