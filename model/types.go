package model

// An Event is the unit of data moved through the pipeline.
// The body is opaque, headers are never interpreted by the bridge.
type Event struct {
	Headers map[string]string
	Body    []byte
}

// create a new event with an empty header mapping
func NewEvent(body []byte) *Event {
	return &Event{
		Headers: make(map[string]string),
		Body:    body,
	}
}

// Status is the result of a single sink Process invocation
type Status uint

const (
	// more events may be processed right away
	StatusReady Status = 0
	// the caller should wait before invoking Process again
	StatusBackoff Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusBackoff:
		return "BACKOFF"
	}
	return "UNKNOWN"
}
