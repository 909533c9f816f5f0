package model

// SourceState is the lifecycle state of an ingress controller
type SourceState uint

// set the values manually instead of using iota, so log data can be associated easier
const (
	SourceStateIdle         SourceState = 0
	SourceStateStarting     SourceState = 1
	SourceStateConnecting   SourceState = 2
	SourceStateConnected    SourceState = 3
	SourceStateDisconnected SourceState = 4
	SourceStateStopping     SourceState = 5
	SourceStateStopped      SourceState = 6
	SourceStateErrored      SourceState = 7
)

func (s SourceState) String() string {
	switch s {
	case SourceStateIdle:
		return "idle"
	case SourceStateStarting:
		return "starting"
	case SourceStateConnecting:
		return "connecting"
	case SourceStateConnected:
		return "connected"
	case SourceStateDisconnected:
		return "disconnected"
	case SourceStateStopping:
		return "stopping"
	case SourceStateStopped:
		return "stopped"
	case SourceStateErrored:
		return "errored"
	}
	return "unknown"
}

// IsRunning reports if the lifecycle allows new connection attempts
func (s SourceState) IsRunning() bool {
	switch s {
	case SourceStateStarting, SourceStateConnecting, SourceStateConnected, SourceStateDisconnected:
		return true
	}
	return false
}

// SinkState is the lifecycle state of an egress controller
type SinkState uint

const (
	SinkStateIdle      SinkState = 0
	SinkStateListening SinkState = 1
	SinkStateStopped   SinkState = 2
)

func (s SinkState) String() string {
	switch s {
	case SinkStateIdle:
		return "idle"
	case SinkStateListening:
		return "listening"
	case SinkStateStopped:
		return "stopped"
	}
	return "unknown"
}

// ReadyState of a single websocket connection, either client or server peer
type ReadyState uint

const (
	ReadyStateNotYetConnected ReadyState = 0
	ReadyStateConnecting      ReadyState = 1
	ReadyStateOpen            ReadyState = 2
	ReadyStateClosing         ReadyState = 3
	ReadyStateClosed          ReadyState = 4
)

func (r ReadyState) String() string {
	switch r {
	case ReadyStateNotYetConnected:
		return "not yet connected"
	case ReadyStateConnecting:
		return "connecting"
	case ReadyStateOpen:
		return "open"
	case ReadyStateClosing:
		return "closing"
	case ReadyStateClosed:
		return "closed"
	}
	return "unknown"
}
