package api

import "github.com/wsbridge/wsbridge-go/model"

//go:generate mockgen -destination=../mocks/mockgen_api.go -package=mocks github.com/wsbridge/wsbridge-go/api ChannelProcessor,Channel,Transaction,SourceCounter,SinkCounter,EventDrivenSource,PollableSink

/* Host pipeline */

// Used to pass events created by a source into the pipeline
//
// implemented by channel.Processor, used by source.Source
type ChannelProcessor interface {
	// submit a single event, returns an error if the channel rejected it
	ProcessEvent(event *model.Event) error
}

// A transactional unit of work on a channel
//
// implemented by channel.MemoryChannel transactions, used by sink.Sink and channel.Processor
type Transaction interface {
	Begin()
	// stage an event for publishing on commit
	Put(event *model.Event) error
	// take the next event, nil if the channel is empty
	Take() (*model.Event, error)
	Commit() error
	Rollback() error
	Close()
}

// The buffer between sources and sinks
//
// implemented by channel.MemoryChannel, used by sink.Sink
type Channel interface {
	Transaction() Transaction
}

/* Counters */

// implemented by metrics.SourceCounter, used by source.Source
type SourceCounter interface {
	Start()
	Stop()
	IncrementEventReceivedCount()
	IncrementEventAcceptedCount()
	SetOpenConnectionCount(count int64)
}

// implemented by metrics.SinkCounter, used by sink.Sink
type SinkCounter interface {
	Start()
	Stop()
	IncrementEventDrainAttemptCount()
	IncrementEventDrainSuccessCount()
	IncrementConnectionCreatedCount()
	IncrementConnectionClosedCount()
}

/* Components */

// lifecycle methods invoked by the host in the order configure, start, stop
type Lifecycle interface {
	Configure(properties map[string]string) error
	Start() error
	Stop()
}

// A source pushing events into a channel processor on its own schedule
//
// implemented by source.Source and console.ReaderSource, used by hub.Hub
type EventDrivenSource interface {
	Lifecycle
	SetChannelProcessor(processor ChannelProcessor)
}

// A sink polled by the host to drain a channel
//
// implemented by sink.Sink and console.WriterSink, used by hub.Hub
type PollableSink interface {
	Lifecycle
	SetChannel(channel Channel)
	Process() (model.Status, error)
}
