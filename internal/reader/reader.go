// Package reader is the boundary to the NFC hardware: a blocking wait for
// the next tag presentation with a bounded timeout. The real ACR122 bridge
// runs as a separate daemon and feeds scans over HTTP; SimReader stands in
// for it in dev and tests.
package reader

import (
	"context"
	"errors"
	"time"
)

// ErrNoTag is returned when no tag was presented within the timeout.
var ErrNoTag = errors.New("no tag presented within timeout")

// Reader yields the next scanned tag id.
type Reader interface {
	WaitForTag(ctx context.Context, timeout time.Duration) (string, error)
}

// SimReader is a channel-fed Reader. Present pushes a tag id a concurrent
// WaitForTag will pick up.
type SimReader struct {
	ch chan string
}

// NewSimReader creates a reader buffering up to buf pending presentations.
func NewSimReader(buf int) *SimReader {
	if buf <= 0 {
		buf = 1
	}
	return &SimReader{ch: make(chan string, buf)}
}

var _ Reader = (*SimReader)(nil)

// Present simulates holding a tag to the reader. Returns false when the
// buffer is full.
func (r *SimReader) Present(tagID string) bool {
	select {
	case r.ch <- tagID:
		return true
	default:
		return false
	}
}

// WaitForTag blocks until a tag arrives, the timeout expires, or ctx ends.
func (r *SimReader) WaitForTag(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case tag := <-r.ch:
		return tag, nil
	case <-timer.C:
		return "", ErrNoTag
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
