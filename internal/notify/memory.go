package notify

import (
	"context"
	"sync"
)

// Broadcaster is an in-process Notifier fanning events out to channel
// subscribers. Slow subscribers drop events rather than block a scan.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan ScanEvent
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster { return &Broadcaster{} }

var _ Notifier = (*Broadcaster)(nil)

// Publish fans the event out without blocking.
func (b *Broadcaster) Publish(_ context.Context, evt ScanEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
	return nil
}

// Subscribe registers a buffered subscriber channel.
func (b *Broadcaster) Subscribe(buf int) <-chan ScanEvent {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan ScanEvent, buf)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}
