package notify

import (
	"context"
	"encoding/json"

	"tagtrack/internal/queue"
)

// QueuePublisher hands events to the queue for the worker to relay. This is
// the default wiring in the API process so a slow push transport never sits
// on the scan path.
type QueuePublisher struct {
	q queue.Queue
}

// NewQueuePublisher wraps a queue backend.
func NewQueuePublisher(q queue.Queue) *QueuePublisher {
	return &QueuePublisher{q: q}
}

var _ Notifier = (*QueuePublisher)(nil)

// Publish enqueues the event as an nfc_scan message.
func (p *QueuePublisher) Publish(ctx context.Context, evt ScanEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.q.Publish(ctx, queue.Message{Type: EventType, Body: body})
}
