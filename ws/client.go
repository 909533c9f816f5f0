package ws

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
	ordered "gitlab.com/c0b/go-ordered-json"
)

const (
	headerCookie = "cookie"

	defaultHandshakeTimeout = 10 * time.Second
)

type clientHandlers struct {
	onOpen    func(*http.Response)
	onMessage func(string)
	onClose   func(int)
	onError   func(error)
}

// ClientBuilder collects the options of a websocket client
type ClientBuilder struct {
	endpoint         *url.URL
	headers          *ordered.OrderedMap
	tlsConfig        *tls.Config
	handshakeTimeout time.Duration
	handlers         clientHandlers
}

func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{
		headers:          ordered.NewOrderedMap(),
		handshakeTimeout: defaultHandshakeTimeout,
	}
}

func (b *ClientBuilder) SetEndpoint(endpoint *url.URL) *ClientBuilder {
	b.endpoint = endpoint
	return b
}

// SetHTTPHeader sends an additional header with the opening handshake
func (b *ClientBuilder) SetHTTPHeader(name, value string) *ClientBuilder {
	b.headers.Set(name, value)
	return b
}

// SetHTTPHeaders sets every entry of headers in order
func (b *ClientBuilder) SetHTTPHeaders(headers *ordered.OrderedMap) *ClientBuilder {
	forEach(headers, func(name, value string) { b.SetHTTPHeader(name, value) })
	return b
}

// SetHTTPCookie appends name=value to the single cookie header
func (b *ClientBuilder) SetHTTPCookie(name, value string) *ClientBuilder {
	cookie := name + "=" + value
	if existing := b.HTTPHeader(headerCookie); b.headers.Has(headerCookie) {
		cookie = existing + ";" + cookie
	}
	b.headers.Set(headerCookie, cookie)
	return b
}

// SetHTTPCookies appends every entry of cookies in order
func (b *ClientBuilder) SetHTTPCookies(cookies *ordered.OrderedMap) *ClientBuilder {
	forEach(cookies, func(name, value string) { b.SetHTTPCookie(name, value) })
	return b
}

func (b *ClientBuilder) OnOpen(fn func(*http.Response)) *ClientBuilder {
	b.handlers.onOpen = fn
	return b
}

func (b *ClientBuilder) OnMessage(fn func(string)) *ClientBuilder {
	b.handlers.onMessage = fn
	return b
}

func (b *ClientBuilder) OnClose(fn func(int)) *ClientBuilder {
	b.handlers.onClose = fn
	return b
}

func (b *ClientBuilder) OnError(fn func(error)) *ClientBuilder {
	b.handlers.onError = fn
	return b
}

// SetTLSConfig is used for wss endpoints, nil uses the platform default
func (b *ClientBuilder) SetTLSConfig(config *tls.Config) *ClientBuilder {
	b.tlsConfig = config
	return b
}

func (b *ClientBuilder) SetHandshakeTimeout(timeout time.Duration) *ClientBuilder {
	b.handshakeTimeout = timeout
	return b
}

// HTTPHeaders returns a copy of the configured headers
func (b *ClientBuilder) HTTPHeaders() *ordered.OrderedMap {
	return copyHeaders(b.headers)
}

func (b *ClientBuilder) HTTPHeader(name string) string {
	if value, ok := b.headers.Get(name).(string); ok {
		return value
	}
	return ""
}

// Build creates a client that is not yet connected
func (b *ClientBuilder) Build() *Client {
	client := &Client{
		headers:          copyHeaders(b.headers),
		tlsConfig:        b.tlsConfig,
		handshakeTimeout: b.handshakeTimeout,
		handlers:         b.handlers,
		noDelay:          true,
		lostTimeout:      DefaultConnectionLostTimeout,
		readyState:       model.ReadyStateNotYetConnected,
	}
	if b.endpoint != nil {
		endpoint := *b.endpoint
		client.endpoint = &endpoint
	}
	if client.tlsConfig != nil {
		client.tlsConfig = client.tlsConfig.Clone()
	}
	return client
}

// Connect builds a client and starts connecting it
func (b *ClientBuilder) Connect() (*Client, error) {
	client := b.Build()
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}

// Client is a websocket client for a single connection attempt.
//
// All handlers are called sequentially from one goroutine: open once after the
// handshake, message per text frame and close exactly once with the close code.
type Client struct {
	endpoint         *url.URL
	headers          *ordered.OrderedMap
	tlsConfig        *tls.Config
	handshakeTimeout time.Duration
	handlers         clientHandlers

	reuseAddr   bool
	noDelay     bool
	lostTimeout time.Duration

	readyState model.ReadyState
	closing    bool
	conn       *connection
	cancel     context.CancelFunc

	mux sync.Mutex
}

// SetReuseAddr sets SO_REUSEADDR on the socket, only effective before Connect
func (c *Client) SetReuseAddr(on bool) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.reuseAddr = on
}

// SetTCPNoDelay sets TCP_NODELAY on the socket, only effective before Connect
func (c *Client) SetTCPNoDelay(on bool) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.noDelay = on
}

// SetConnectionLostTimeout sets the ping interval, 0 disables it. Only effective before Connect.
func (c *Client) SetConnectionLostTimeout(timeout time.Duration) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.lostTimeout = timeout
}

func (c *Client) ReadyState() model.ReadyState {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.readyState
}

func (c *Client) IsOpen() bool {
	return c.ReadyState() == model.ReadyStateOpen
}

func (c *Client) IsClosed() bool {
	return c.ReadyState() == model.ReadyStateClosed
}

// HTTPHeaders returns a copy of the headers sent with the handshake
func (c *Client) HTTPHeaders() *ordered.OrderedMap {
	return copyHeaders(c.headers)
}

// Connect starts the opening handshake and returns immediately
func (c *Client) Connect() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.readyState != model.ReadyStateNotYetConnected {
		return ErrAlreadyConnected
	}
	if c.endpoint == nil {
		return ErrMissingEndpoint
	}

	var ctx context.Context
	ctx, c.cancel = context.WithCancel(context.Background())
	c.readyState = model.ReadyStateConnecting

	go c.run(ctx, c.dialer())

	return nil
}

// Send queues a text frame
func (c *Client) Send(text string) error {
	c.mux.Lock()
	conn := c.conn
	open := c.readyState == model.ReadyStateOpen
	c.mux.Unlock()

	if !open || conn == nil {
		return ErrNotOpen
	}

	return conn.send(text, true)
}

// Close starts the closing handshake or aborts a running connect
func (c *Client) Close() {
	c.mux.Lock()
	switch c.readyState {
	case model.ReadyStateNotYetConnected:
		c.readyState = model.ReadyStateClosed
		c.mux.Unlock()
		return
	case model.ReadyStateClosing, model.ReadyStateClosed:
		c.mux.Unlock()
		return
	}

	c.closing = true
	c.readyState = model.ReadyStateClosing
	conn, cancel := c.conn, c.cancel
	c.mux.Unlock()

	if conn != nil {
		conn.close(CloseNormal, "")
	} else if cancel != nil {
		cancel()
	}
}

func (c *Client) dialer() *websocket.Dialer {
	netDialer := &net.Dialer{
		Timeout: c.handshakeTimeout,
	}
	if c.reuseAddr {
		netDialer.Control = func(network, address string, raw syscall.RawConn) error {
			return setReuseAddr(raw)
		}
	}
	noDelay := c.noDelay

	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.handshakeTimeout,
		TLSClientConfig:  c.tlsConfig,
		ReadBufferSize:   ReadBufferSize,
		WriteBufferSize:  WriteBufferSize,
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := netDialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(noDelay)
			}
			return conn, nil
		},
	}
}

func (c *Client) requestHeader() http.Header {
	header := http.Header{}
	forEach(c.headers, header.Set)
	return header
}

func (c *Client) run(ctx context.Context, dialer *websocket.Dialer) {
	defer c.cancel()

	logging.Log().Debug("connecting to", c.endpoint.Redacted())

	conn, resp, err := dialer.DialContext(ctx, c.endpoint.String(), c.requestHeader())
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}

	c.mux.Lock()
	if err != nil || c.closing {
		closing := c.closing
		c.readyState = model.ReadyStateClosed
		c.mux.Unlock()

		if conn != nil {
			_ = conn.Close()
		}
		if closing {
			c.dispatchClose(CloseNormal)
			return
		}
		logging.Log().Debug("connecting to", c.endpoint.Redacted(), "failed:", err)
		c.dispatchError(err)
		c.dispatchClose(CloseAbnormal)
		return
	}

	c.conn = newConnection(conn, c.endpoint.Host, c.lostTimeout)
	c.conn.run()
	c.readyState = model.ReadyStateOpen
	c.mux.Unlock()

	if c.handlers.onOpen != nil {
		c.handlers.onOpen(resp)
	}

	code := c.conn.readPump(connectionEvents{
		onMessage: c.dispatchMessage,
		onError:   c.dispatchError,
	})

	c.mux.Lock()
	c.readyState = model.ReadyStateClosed
	c.mux.Unlock()

	c.dispatchClose(code)
}

func (c *Client) dispatchMessage(text string) {
	if c.handlers.onMessage != nil {
		c.handlers.onMessage(text)
	}
}

func (c *Client) dispatchError(err error) {
	if c.handlers.onError != nil {
		c.handlers.onError(err)
	}
}

func (c *Client) dispatchClose(code int) {
	if c.handlers.onClose != nil {
		c.handlers.onClose(code)
	}
}

func forEach(entries *ordered.OrderedMap, fn func(key, value string)) {
	if entries == nil {
		return
	}
	iter := entries.EntriesIter()
	for {
		pair, ok := iter()
		if !ok {
			return
		}
		fn(pair.Key, fmt.Sprint(pair.Value))
	}
}

func copyHeaders(source *ordered.OrderedMap) *ordered.OrderedMap {
	result := ordered.NewOrderedMap()
	forEach(source, func(key, value string) {
		result.Set(key, value)
	})
	return result
}
