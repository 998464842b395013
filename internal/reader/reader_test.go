package reader

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForTagReceivesPresentation(t *testing.T) {
	r := NewSimReader(1)
	if !r.Present("AB12") {
		t.Fatal("present should succeed with free buffer")
	}

	tag, err := r.WaitForTag(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if tag != "AB12" {
		t.Fatalf("tag = %q", tag)
	}
}

func TestWaitForTagTimesOut(t *testing.T) {
	r := NewSimReader(1)
	_, err := r.WaitForTag(context.Background(), 10*time.Millisecond)
	if !errors.Is(err, ErrNoTag) {
		t.Fatalf("expected ErrNoTag, got %v", err)
	}
}

func TestWaitForTagHonorsContext(t *testing.T) {
	r := NewSimReader(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.WaitForTag(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPresentRejectsWhenFull(t *testing.T) {
	r := NewSimReader(1)
	if !r.Present("one") {
		t.Fatal("first present should fit")
	}
	if r.Present("two") {
		t.Fatal("second present should be rejected, buffer full")
	}
}
