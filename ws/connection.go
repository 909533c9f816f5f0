package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/sizestr"
	"github.com/wsbridge/wsbridge-go/logging"
)

// callbacks of a running connection, all invoked from the goroutine running readPump
type connectionEvents struct {
	onMessage func(text string)
	onError   func(err error)
}

// Handling of one established websocket connection, shared by clients and server peers
type connection struct {
	// The actual websocket connection
	conn *websocket.Conn

	// used in log messages
	label string

	// ping interval, 0 disables keep alive
	pingPeriod time.Duration

	// outgoing text frames
	writeChannel chan string

	// closed when no more frames should be written
	closeChannel chan struct{}

	// no more frames are accepted
	connectionClosed bool
	// the close was initiated on this side with closeCode
	localClose bool
	closeCode  int
	// the first failed write
	writeError error
	// forces the socket closed if the remote does not answer the close frame
	closeTimer *time.Timer

	muxConnClosed sync.Mutex
	muxConWrite   sync.Mutex
	shutdownOnce  sync.Once
}

func newConnection(conn *websocket.Conn, label string, pingPeriod time.Duration) *connection {
	return &connection{
		conn:         conn,
		label:        label,
		pingPeriod:   pingPeriod,
		writeChannel: make(chan string, writeQueueSize),
		closeChannel: make(chan struct{}),
	}
}

// starts the write pump, readPump has to be run by the owner
func (w *connection) run() {
	go w.writePump()
}

func (w *connection) isConnClosed() bool {
	w.muxConnClosed.Lock()
	defer w.muxConnClosed.Unlock()

	return w.connectionClosed
}

// queue a text frame, without blocking a full queue returns ErrQueueFull
func (w *connection) send(text string, block bool) error {
	if w.isConnClosed() {
		return ErrNotOpen
	}

	if block {
		select {
		case w.writeChannel <- text:
			return nil
		case <-w.closeChannel:
			return ErrNotOpen
		}
	}

	select {
	case w.writeChannel <- text:
		return nil
	case <-w.closeChannel:
		return ErrNotOpen
	default:
		return ErrQueueFull
	}
}

// writePump pumps queued frames and pings to the websocket connection
func (w *connection) writePump() {
	var ticks <-chan time.Time
	if w.pingPeriod > 0 {
		ticker := time.NewTicker(w.pingPeriod)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-w.closeChannel:
			return

		case text := <-w.writeChannel:
			if !w.writeMessage(websocket.TextMessage, []byte(text)) {
				return
			}
			logging.Log().Trace("send:", w.label, sizestr.ToString(int64(len(text))))

		case <-ticks:
			if !w.writeMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

// make sure websocket Write is only called once at a time
func (w *connection) writeMessage(messageType int, data []byte) bool {
	if w.isConnClosed() {
		return false
	}

	w.muxConWrite.Lock()
	defer w.muxConWrite.Unlock()

	var err error
	if messageType == websocket.PingMessage {
		err = w.conn.WriteControl(messageType, data, time.Now().Add(writeWait))
	} else {
		_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = w.conn.WriteMessage(messageType, data)
	}
	if err != nil {
		logging.Log().Debug(w.label, "error writing to websocket:", err)
		w.abort(err)
		return false
	}

	return true
}

// tear down after a write failure, the read pump reports the error
func (w *connection) abort(err error) {
	w.muxConnClosed.Lock()
	w.connectionClosed = true
	if w.writeError == nil {
		w.writeError = err
	}
	w.muxConnClosed.Unlock()

	w.shutdownOnce.Do(func() {
		close(w.closeChannel)
	})
	_ = w.conn.Close()
}

// initiate the close handshake with the given code
func (w *connection) close(code int, reason string) {
	w.shutdownOnce.Do(func() {
		w.muxConnClosed.Lock()
		w.connectionClosed = true
		w.localClose = true
		w.closeCode = code
		w.muxConnClosed.Unlock()

		close(w.closeChannel)

		w.muxConWrite.Lock()
		err := w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		w.muxConWrite.Unlock()

		if err != nil {
			_ = w.conn.Close()
			return
		}

		w.muxConnClosed.Lock()
		w.closeTimer = time.AfterFunc(closeWait, func() {
			_ = w.conn.Close()
		})
		w.muxConnClosed.Unlock()
	})
}

// readPump delivers text frames until the connection ends and returns the close code
func (w *connection) readPump(events connectionEvents) int {
	if w.pingPeriod > 0 {
		wait := pongWait(w.pingPeriod)
		_ = w.conn.SetReadDeadline(time.Now().Add(wait))
		w.conn.SetPongHandler(func(string) error {
			return w.conn.SetReadDeadline(time.Now().Add(wait))
		})
	}

	for {
		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			return w.finish(err, events)
		}

		if msgType != websocket.TextMessage {
			logging.Log().Debug(w.label, "ignoring binary frame of", sizestr.ToString(int64(len(data))))
			continue
		}

		logging.Log().Trace("recv:", w.label, sizestr.ToString(int64(len(data))))
		events.onMessage(string(data))
	}
}

func (w *connection) finish(readErr error, events connectionEvents) int {
	w.muxConnClosed.Lock()
	w.connectionClosed = true
	localClose, code, writeError := w.localClose, w.closeCode, w.writeError
	if w.closeTimer != nil {
		w.closeTimer.Stop()
	}
	w.muxConnClosed.Unlock()

	w.shutdownOnce.Do(func() {
		close(w.closeChannel)
	})
	_ = w.conn.Close()

	if localClose {
		return code
	}

	var closeErr *websocket.CloseError
	if errors.As(readErr, &closeErr) && closeErr.Code != websocket.CloseAbnormalClosure && writeError == nil {
		logging.Log().Debug(w.label, "closed by remote:", closeErr.Code, closeErr.Text)
		return closeErr.Code
	}

	err := readErr
	if writeError != nil {
		err = writeError
	}
	logging.Log().Debug(w.label, "websocket read error:", err)
	events.onError(err)

	return CloseAbnormal
}
