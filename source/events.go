package source

import (
	"net/http"

	"github.com/wsbridge/wsbridge-go/ws"
)

type eventKind int

const (
	eventOpen eventKind = iota
	eventMessage
	eventClose
	eventError
	eventReconnect
	eventStop
)

func (k eventKind) String() string {
	switch k {
	case eventOpen:
		return "open"
	case eventMessage:
		return "message"
	case eventClose:
		return "close"
	case eventError:
		return "error"
	case eventReconnect:
		return "reconnect"
	case eventStop:
		return "stop"
	}
	return "unknown"
}

// identifies the client a callback belongs to
type attempt struct {
	id uint64
}

// ownerEvent is everything the owner goroutine reacts on
type ownerEvent struct {
	kind    eventKind
	attempt *attempt
	text    string
	code    int
	err     error
	done    chan struct{}
}

// attach wires the builder callbacks for one connection attempt, they only enqueue
func (s *Source) attach(builder *ws.ClientBuilder, a *attempt) {
	builder.
		OnOpen(func(*http.Response) {
			s.enqueue(ownerEvent{kind: eventOpen, attempt: a})
		}).
		OnMessage(func(text string) {
			s.enqueue(ownerEvent{kind: eventMessage, attempt: a, text: text})
		}).
		OnClose(func(code int) {
			s.enqueue(ownerEvent{kind: eventClose, attempt: a, code: code})
		}).
		OnError(func(err error) {
			s.enqueue(ownerEvent{kind: eventError, attempt: a, err: err})
		})
}
