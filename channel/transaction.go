package channel

import (
	"time"

	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/model"
)

type transactionState int

const (
	transactionNew transactionState = iota
	transactionOpen
	transactionCommitted
	transactionRolledBack
	transactionClosed
)

// memoryTransaction stages puts until Commit and keeps taken events until Commit or Rollback
type memoryTransaction struct {
	channel *MemoryChannel
	state   transactionState
	puts    []*model.Event
	takes   []*model.Event
}

var _ api.Transaction = (*memoryTransaction)(nil)

func (t *memoryTransaction) Begin() {
	t.state = transactionOpen
	t.puts = nil
	t.takes = nil
}

func (t *memoryTransaction) Put(event *model.Event) error {
	if t.state != transactionOpen {
		return ErrTransactionState
	}
	if t.channel.IsClosed() {
		return ErrChannelClosed
	}

	t.puts = append(t.puts, event)
	return nil
}

// Take waits up to the channel keep alive for an event, nil without error on timeout
func (t *memoryTransaction) Take() (*model.Event, error) {
	if t.state != transactionOpen {
		return nil, ErrTransactionState
	}

	timer := time.NewTimer(t.channel.keepAlive)
	defer timer.Stop()

	for {
		event, changed, err := t.channel.poll()
		if err != nil {
			return nil, err
		}
		if event != nil {
			t.takes = append(t.takes, event)
			return event, nil
		}

		select {
		case <-changed:
		case <-timer.C:
			return nil, nil
		}
	}
}

func (t *memoryTransaction) Commit() error {
	if t.state != transactionOpen {
		return ErrTransactionState
	}

	if err := t.channel.publish(t.puts); err != nil {
		return err
	}

	t.state = transactionCommitted
	t.puts = nil
	t.takes = nil
	return nil
}

func (t *memoryTransaction) Rollback() error {
	if t.state != transactionOpen {
		return ErrTransactionState
	}

	t.channel.restore(t.takes)

	t.state = transactionRolledBack
	t.puts = nil
	t.takes = nil
	return nil
}

// Close ends the transaction, an open transaction is rolled back
func (t *memoryTransaction) Close() {
	if t.state == transactionOpen {
		logging.Log().Debug("closing open transaction, rolling back")
		_ = t.Rollback()
	}
	t.state = transactionClosed
}
