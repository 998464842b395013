package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tagtrack/internal/queue"
)

func TestBroadcasterFansOut(t *testing.T) {
	b := NewBroadcaster()
	a := b.Subscribe(1)
	c := b.Subscribe(1)

	evt := ScanEvent{Type: EventType, StudentID: 7, NewStatus: true}
	if err := b.Publish(context.Background(), evt); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, sub := range []<-chan ScanEvent{a, c} {
		select {
		case got := <-sub:
			if got.StudentID != 7 {
				t.Fatalf("wrong event: %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBroadcasterDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe(1)

	_ = b.Publish(context.Background(), ScanEvent{StudentID: 1})
	_ = b.Publish(context.Background(), ScanEvent{StudentID: 2}) // dropped, buffer full

	got := <-sub
	if got.StudentID != 1 {
		t.Fatalf("expected first event, got %+v", got)
	}
	select {
	case extra := <-sub:
		t.Fatalf("second event should have been dropped, got %+v", extra)
	default:
	}
}

func TestQueuePublisherWrapsEvent(t *testing.T) {
	q := queue.NewInMemory(4)
	p := NewQueuePublisher(q)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sent := ScanEvent{Type: EventType, StudentID: 7, StudentName: "Jane", NewStatus: true, DutyTeacher: "Ms. Lee"}
	if err := p.Publish(ctx, sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msgs, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	msg := <-msgs
	if msg.Type != EventType {
		t.Fatalf("message type = %q", msg.Type)
	}
	var got ScanEvent
	if err := json.Unmarshal(msg.Body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != sent {
		t.Fatalf("event mangled in transit: %+v vs %+v", got, sent)
	}
}
