package student

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTagResolutionIsIdempotent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	st, _ := m.Create(ctx, "John", "10A", nil)
	if err := m.AssignTag(ctx, st.ID, "AB12"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	first, err := m.ResolveTag(ctx, "AB12")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := m.ResolveTag(ctx, "AB12")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first.ID != second.ID || first.ID != st.ID {
		t.Fatalf("resolution not stable: %d vs %d", first.ID, second.ID)
	}
}

func TestResolveUnknownTag(t *testing.T) {
	m := NewMemory()
	if _, err := m.ResolveTag(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignTakenTagFails(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	a, _ := m.Create(ctx, "A", "10A", nil)
	b, _ := m.Create(ctx, "B", "10A", nil)

	if err := m.AssignTag(ctx, a.ID, "AB12"); err != nil {
		t.Fatalf("assign to A: %v", err)
	}
	if err := m.AssignTag(ctx, b.ID, "AB12"); !errors.Is(err, ErrTagTaken) {
		t.Fatalf("expected ErrTagTaken, got %v", err)
	}

	// A still owns the tag.
	owner, err := m.ResolveTag(ctx, "AB12")
	if err != nil || owner.ID != a.ID {
		t.Fatalf("ownership moved: owner=%v err=%v", owner, err)
	}
}

func TestConcurrentTagAssignmentHasOneWinner(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	const n = 8
	ids := make([]int64, n)
	for i := range ids {
		st, _ := m.Create(ctx, "S", "10A", nil)
		ids[i] = st.ID
	}

	var wg sync.WaitGroup
	var winners int32
	var mu sync.Mutex
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := m.AssignTag(ctx, id, "HOT"); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
	if _, err := m.ResolveTag(ctx, "HOT"); err != nil {
		t.Fatalf("tag should resolve to the winner: %v", err)
	}
}

func TestSetAttendanceIsConditional(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	st, _ := m.Create(ctx, "John", "10A", nil)
	now := time.Now().UTC()

	if err := m.SetAttendance(ctx, st.ID, false, true, now); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// Same observed value again: the flag moved, so this is stale.
	if err := m.SetAttendance(ctx, st.ID, false, true, now); !errors.Is(err, ErrStaleFlag) {
		t.Fatalf("expected ErrStaleFlag, got %v", err)
	}

	got, _ := m.Get(ctx, st.ID)
	if !got.InSchool || got.LastScan == nil || !got.LastScan.Equal(now) {
		t.Fatalf("flag and timestamp must move together: %+v", got)
	}
}

func TestDeleteUnknownStudent(t *testing.T) {
	m := NewMemory()
	if err := m.Delete(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
