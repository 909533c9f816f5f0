package ws

import (
	"errors"
	"time"
)

const (
	writeWait = 10 * time.Second

	// grace period for the remote side to answer a close frame
	closeWait = 2 * time.Second

	// default ping interval, the peer is considered dead after pongFactor times
	// this interval without a pong
	DefaultConnectionLostTimeout = 60 * time.Second
	pongFactor                   = 1.5

	// outgoing frames buffered per connection
	writeQueueSize = 64

	ReadBufferSize  = 4096
	WriteBufferSize = 4096
)

// Close codes reported to close handlers
const (
	CloseNormal    = 1000
	CloseGoingAway = 1001
	CloseAbnormal  = 1006
)

var (
	ErrNotOpen          = errors.New("websocket is not open")
	ErrAlreadyConnected = errors.New("websocket client was already connected")
	ErrMissingEndpoint  = errors.New("websocket endpoint is not set")
	ErrQueueFull        = errors.New("websocket write queue is full")
)

func pongWait(pingPeriod time.Duration) time.Duration {
	return time.Duration(float64(pingPeriod) * pongFactor)
}
