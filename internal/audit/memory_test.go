package audit

import (
	"context"
	"testing"
)

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Record(ctx, Entry{Action: ActionCheckIn, TargetType: "student", TargetID: "7"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	logs, _ := m.List(ctx, Filter{})
	if len(logs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(logs))
	}
	if logs[0].ID == "" || logs[0].CreatedAt.IsZero() {
		t.Fatalf("id and timestamp should be filled: %+v", logs[0])
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Record(ctx, Entry{Action: ActionCheckIn, TargetType: "student", TargetID: "1"})
	_ = m.Record(ctx, Entry{Action: ActionUserLogin, TargetType: "user", TargetID: "2"})
	_ = m.Record(ctx, Entry{Action: ActionCheckOut, TargetType: "student", TargetID: "1"})

	logs, _ := m.List(ctx, Filter{Actions: []string{ActionCheckIn, ActionCheckOut}})
	if len(logs) != 2 {
		t.Fatalf("expected 2 attendance rows, got %d", len(logs))
	}
	if logs[0].Action != ActionCheckOut {
		t.Fatalf("expected newest first, got %s", logs[0].Action)
	}

	logs, _ = m.List(ctx, Filter{TargetType: "user"})
	if len(logs) != 1 || logs[0].Action != ActionUserLogin {
		t.Fatalf("target filter failed: %+v", logs)
	}

	logs, _ = m.List(ctx, Filter{Limit: 1, Offset: 1})
	if len(logs) != 1 || logs[0].Action != ActionUserLogin {
		t.Fatalf("limit/offset failed: %+v", logs)
	}
}
