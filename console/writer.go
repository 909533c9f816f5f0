package console

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/metrics"
	"github.com/wsbridge/wsbridge-go/model"
)

var ErrNoChannel = errors.New("channel is not set")

// WriterSink writes the body of every taken event as one line
type WriterSink struct {
	name    string
	writer  io.Writer
	counter api.SinkCounter

	channel api.Channel
	running bool

	mux      sync.Mutex
	muxWrite sync.Mutex
}

var _ api.PollableSink = (*WriterSink)(nil)

func NewWriterSink(name string, writer io.Writer, counter api.SinkCounter) *WriterSink {
	if counter == nil {
		counter = metrics.NewSinkCounter(name)
	}

	return &WriterSink{
		name:    name,
		writer:  writer,
		counter: counter,
	}
}

func (w *WriterSink) SetChannel(channel api.Channel) {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.channel = channel
}

func (w *WriterSink) Configure(map[string]string) error {
	return nil
}

func (w *WriterSink) Start() error {
	w.mux.Lock()
	defer w.mux.Unlock()

	if w.running {
		return nil
	}
	w.running = true
	w.counter.Start()
	w.counter.IncrementConnectionCreatedCount()

	return nil
}

func (w *WriterSink) Stop() {
	w.mux.Lock()
	defer w.mux.Unlock()

	if !w.running {
		return
	}
	w.running = false
	w.counter.IncrementConnectionClosedCount()
	w.counter.Stop()
}

func (w *WriterSink) Process() (model.Status, error) {
	w.counter.IncrementEventDrainAttemptCount()

	w.mux.Lock()
	running, channel := w.running, w.channel
	w.mux.Unlock()

	if !running {
		return model.StatusBackoff, nil
	}
	if channel == nil {
		return model.StatusBackoff, ErrNoChannel
	}

	tx := channel.Transaction()
	tx.Begin()
	defer tx.Close()

	event, err := tx.Take()
	if err == nil && event != nil {
		err = w.write(event.Body)
	}
	if err == nil {
		err = tx.Commit()
	}

	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logging.Log().Debugf("%s: rollback failed: %s", w.name, rollbackErr)
		}
		return model.StatusBackoff, fmt.Errorf("%s: %w", w.name, err)
	}

	if event != nil {
		w.counter.IncrementEventDrainSuccessCount()
	}
	return model.StatusReady, nil
}

func (w *WriterSink) write(body []byte) error {
	w.muxWrite.Lock()
	defer w.muxWrite.Unlock()

	line := make([]byte, 0, len(body)+1)
	line = append(line, body...)
	line = append(line, '\n')

	_, err := w.writer.Write(line)
	return err
}
