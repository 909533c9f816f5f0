package console

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/jpillora/sizestr"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/metrics"
	"github.com/wsbridge/wsbridge-go/model"
)

// maxLineSize bounds a single line, longer lines end the source with bufio.ErrTooLong
const maxLineSize = 1 << 20

var (
	ErrNoProcessor    = errors.New("channel processor is not set")
	ErrAlreadyRunning = errors.New("source is running")
)

// ReaderSource turns every line of a reader into an event
type ReaderSource struct {
	name    string
	reader  io.Reader
	counter api.SourceCounter

	processor api.ChannelProcessor

	running bool
	done    chan struct{}
	err     error

	mux sync.Mutex
}

var _ api.EventDrivenSource = (*ReaderSource)(nil)

func NewReaderSource(name string, reader io.Reader, counter api.SourceCounter) *ReaderSource {
	if counter == nil {
		counter = metrics.NewSourceCounter(name)
	}

	return &ReaderSource{
		name:    name,
		reader:  reader,
		counter: counter,
		done:    make(chan struct{}),
	}
}

func (r *ReaderSource) SetChannelProcessor(processor api.ChannelProcessor) {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.processor = processor
}

// Configure accepts any properties, the reader needs none
func (r *ReaderSource) Configure(map[string]string) error {
	return nil
}

func (r *ReaderSource) Start() error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if r.processor == nil {
		return ErrNoProcessor
	}
	if r.running {
		return ErrAlreadyRunning
	}

	r.running = true
	r.counter.Start()

	go r.run()

	return nil
}

// Stop ignores every further line and closes the reader if it is a closer
func (r *ReaderSource) Stop() {
	r.mux.Lock()
	if !r.running {
		r.mux.Unlock()
		return
	}
	r.running = false
	r.mux.Unlock()

	if closer, ok := r.reader.(io.Closer); ok {
		_ = closer.Close()
	}
	r.counter.Stop()
}

// Done is closed once the reader is exhausted
func (r *ReaderSource) Done() <-chan struct{} {
	return r.done
}

// Err returns the read error that ended the source, nil on EOF
func (r *ReaderSource) Err() error {
	r.mux.Lock()
	defer r.mux.Unlock()

	return r.err
}

func (r *ReaderSource) isRunning() bool {
	r.mux.Lock()
	defer r.mux.Unlock()

	return r.running
}

func (r *ReaderSource) run() {
	defer close(r.done)

	scanner := bufio.NewScanner(r.reader)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		if !r.isRunning() {
			return
		}
		r.handle(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && r.isRunning() {
		logging.Log().Errorf("%s: reading failed: %s", r.name, err)

		r.mux.Lock()
		r.err = err
		r.mux.Unlock()
		return
	}

	logging.Log().Debug(r.name, "input exhausted")
}

func (r *ReaderSource) handle(line []byte) {
	r.counter.IncrementEventReceivedCount()

	body := make([]byte, len(line))
	copy(body, line)

	if err := r.processor.ProcessEvent(model.NewEvent(body)); err != nil {
		logging.Log().Errorf("%s: event of %s rejected: %s", r.name, sizestr.ToString(int64(len(body))), err)
		return
	}
	r.counter.IncrementEventAcceptedCount()
}
