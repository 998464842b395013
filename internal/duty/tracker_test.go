package duty

import (
	"context"
	"testing"
	"time"
)

func TestCurrentIsNilBeforeFirstAssignment(t *testing.T) {
	m := NewMemory()
	cur, err := m.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != nil {
		t.Fatalf("expected no assignment, got %+v", cur)
	}
}

func TestAssignSupersedes(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Assign(ctx, 1, "Ms. Lee"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := m.Assign(ctx, 2, "Mr. Ito"); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	cur, _ := m.Current(ctx)
	if cur == nil || cur.TeacherID != 2 || cur.TeacherName != "Mr. Ito" {
		t.Fatalf("reassignment did not supersede: %+v", cur)
	}
}

func TestReassignSameTeacherRefreshesTimestamp(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Assign(ctx, 1, "Ms. Lee")
	first, _ := m.Current(ctx)

	time.Sleep(5 * time.Millisecond)
	_ = m.Assign(ctx, 1, "Ms. Lee")
	second, _ := m.Current(ctx)

	if !second.AssignedAt.After(first.AssignedAt) {
		t.Fatalf("timestamp not refreshed: %v vs %v", first.AssignedAt, second.AssignedAt)
	}
}
