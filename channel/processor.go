package channel

import (
	"fmt"

	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/model"
)

// Processor puts every event into a channel within its own transaction
type Processor struct {
	channel api.Channel
}

var _ api.ChannelProcessor = (*Processor)(nil)

func NewProcessor(channel api.Channel) *Processor {
	return &Processor{channel: channel}
}

func (p *Processor) ProcessEvent(event *model.Event) error {
	tx := p.channel.Transaction()
	tx.Begin()
	defer tx.Close()

	if err := tx.Put(event); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("put failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit failed: %w", err)
	}

	return nil
}
