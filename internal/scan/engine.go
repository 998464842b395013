// Package scan implements the check-in/out engine: resolve the tag, flip
// the student's attendance flag atomically, attribute the scan to the duty
// teacher, audit it, and publish the change.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tagtrack/internal/audit"
	"tagtrack/internal/duty"
	"tagtrack/internal/notify"
	"tagtrack/internal/student"
)

// Source carries who presented the scan, for audit attribution only.
// Authorization happens at the HTTP layer before the engine is reached.
type Source struct {
	ActorID   int64
	IPAddress string
	UserAgent string
}

// Result is what a successful toggle returns to the caller.
type Result struct {
	StudentID   int64     `json:"student_id"`
	StudentName string    `json:"student_name"`
	OldStatus   bool      `json:"old_status"`
	NewStatus   bool      `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
	DutyTeacher string    `json:"duty_teacher,omitempty"`
	Debounced   bool      `json:"debounced,omitempty"`
}

// Engine owns the attendance flag; nothing else writes it.
type Engine struct {
	students student.Store
	tracker  duty.Tracker
	recorder audit.Recorder
	notifier notify.Notifier
	debounce time.Duration
	now      func() time.Time
}

// New creates an engine. debounce > 0 suppresses repeat scans of the same
// student inside the window; the default configuration leaves it off so a
// double tap toggles twice.
func New(students student.Store, tracker duty.Tracker, recorder audit.Recorder, notifier notify.Notifier, debounce time.Duration) *Engine {
	return &Engine{
		students: students,
		tracker:  tracker,
		recorder: recorder,
		notifier: notifier,
		debounce: debounce,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordScan processes one tag presentation. Typed errors come back for
// unregistered tags, persistent races and storage failures; an audit or
// notify failure after the committed toggle is logged and swallowed.
func (e *Engine) RecordScan(ctx context.Context, tagID string, src Source) (*Result, error) {
	if strings.TrimSpace(tagID) == "" {
		return nil, ErrEmptyTag
	}

	st, err := e.students.ResolveTag(ctx, tagID)
	if errors.Is(err, student.ErrNotFound) {
		scansTotal.WithLabelValues("unregistered").Inc()
		e.auditScan(ctx, src, audit.Entry{
			Action:  audit.ActionScanUnregistered,
			Details: fmt.Sprintf("unregistered tag %q presented", tagID),
		})
		return nil, ErrUnregisteredTag
	}
	if err != nil {
		return nil, fmt.Errorf("resolve tag: %w", err)
	}

	now := e.now()
	if e.debounce > 0 && st.LastScan != nil && now.Sub(*st.LastScan) < e.debounce {
		return &Result{
			StudentID:   st.ID,
			StudentName: st.Name,
			OldStatus:   st.InSchool,
			NewStatus:   st.InSchool,
			Timestamp:   *st.LastScan,
			Debounced:   true,
		}, nil
	}

	// Compare-and-swap toggle: one retry against a fresh read, then the
	// caller re-presents the tag.
	old := st.InSchool
	err = e.students.SetAttendance(ctx, st.ID, old, !old, now)
	if errors.Is(err, student.ErrStaleFlag) {
		casRetries.Inc()
		fresh, rerr := e.students.Get(ctx, st.ID)
		if rerr != nil {
			return nil, fmt.Errorf("re-read after conflict: %w", rerr)
		}
		old = fresh.InSchool
		err = e.students.SetAttendance(ctx, st.ID, old, !old, now)
		if errors.Is(err, student.ErrStaleFlag) {
			scansTotal.WithLabelValues("conflict").Inc()
			return nil, ErrConflict
		}
	}
	if err != nil {
		return nil, fmt.Errorf("write attendance: %w", err)
	}
	newStatus := !old

	dutyTeacher := ""
	if cur, derr := e.tracker.Current(ctx); derr != nil {
		// Attribution only; a tracker read failure must not undo the toggle.
		log.Printf("scan: duty lookup failed: %v", derr)
	} else if cur != nil {
		dutyTeacher = cur.TeacherName
	}

	action := audit.ActionCheckOut
	result := "checked_out"
	if newStatus {
		action = audit.ActionCheckIn
		result = "checked_in"
	}
	scansTotal.WithLabelValues(result).Inc()

	attribution := dutyTeacher
	if attribution == "" {
		attribution = "no duty teacher"
	}
	e.auditScan(ctx, src, audit.Entry{
		Action:     action,
		TargetType: "student",
		TargetID:   fmt.Sprintf("%d", st.ID),
		Details:    fmt.Sprintf("%s (duty: %s)", st.Name, attribution),
		CreatedAt:  now,
	})

	evt := notify.ScanEvent{
		Type:        notify.EventType,
		StudentID:   st.ID,
		StudentName: st.Name,
		OldStatus:   old,
		NewStatus:   newStatus,
		Timestamp:   now,
		DutyTeacher: dutyTeacher,
	}
	if nerr := e.notifier.Publish(ctx, evt); nerr != nil {
		log.Printf("scan: notify publish failed: %v", nerr)
	}

	return &Result{
		StudentID:   st.ID,
		StudentName: st.Name,
		OldStatus:   old,
		NewStatus:   newStatus,
		Timestamp:   now,
		DutyTeacher: dutyTeacher,
	}, nil
}

// auditScan appends an entry, degrading to an operational log line when the
// write fails. The committed state change is never rolled back.
func (e *Engine) auditScan(ctx context.Context, src Source, entry audit.Entry) {
	entry.UserID = src.ActorID
	entry.IPAddress = src.IPAddress
	entry.UserAgent = src.UserAgent
	if err := e.recorder.Record(ctx, entry); err != nil {
		auditFailures.Inc()
		log.Printf("scan: audit write failed for action %s: %v", entry.Action, err)
	}
}
