package ws

import (
	"net/http"

	"github.com/wsbridge/wsbridge-go/logging"
)

// ServerHandlers are the per peer callbacks of a server
type ServerHandlers struct {
	OnOpen    func(peer *Peer, request *http.Request)
	OnMessage func(peer *Peer, text string)
	OnClose   func(peer *Peer, code int)
	OnError   func(peer *Peer, err error)
}

// DefaultServerHandlers ignores everything except messages, which are echoed to the sender
func DefaultServerHandlers() ServerHandlers {
	return ServerHandlers{
		OnOpen:    func(*Peer, *http.Request) {},
		OnMessage: echo,
		OnClose:   func(*Peer, int) {},
		OnError:   func(*Peer, error) {},
	}
}

func echo(peer *Peer, text string) {
	if err := peer.Send(text); err != nil {
		logging.Log().Debug(peer.RemoteAddr(), "echo failed:", err)
	}
}
