package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Recorder for dev mode and tests.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty recorder.
func NewMemory() *Memory { return &Memory{} }

var _ Recorder = (*Memory)(nil)

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) List(_ context.Context, f Filter) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	match := func(e Entry) bool {
		if f.TargetType != "" && e.TargetType != f.TargetType {
			return false
		}
		if len(f.Actions) == 0 {
			return true
		}
		for _, a := range f.Actions {
			if e.Action == a {
				return true
			}
		}
		return false
	}

	// Newest first.
	var res []Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if match(m.entries[i]) {
			res = append(res, m.entries[i])
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(res) {
			return nil, nil
		}
		res = res[f.Offset:]
	}
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}
