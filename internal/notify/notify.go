// Package notify delivers scan events to whatever push mechanism the
// deployment uses. The engine only depends on the Notifier interface; the
// payload shape is fixed, the transport is not.
package notify

import (
	"context"
	"time"
)

// EventType is the only event type currently published.
const EventType = "nfc_scan"

// ScanEvent is the payload emitted after a successful toggle.
type ScanEvent struct {
	Type        string    `json:"type"`
	StudentID   int64     `json:"student_id"`
	StudentName string    `json:"student_name"`
	OldStatus   bool      `json:"old_status"`
	NewStatus   bool      `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
	DutyTeacher string    `json:"duty_teacher,omitempty"`
}

// Notifier publishes scan events. Failures are the caller's to log; they
// never affect the committed attendance change.
type Notifier interface {
	Publish(ctx context.Context, evt ScanEvent) error
}
