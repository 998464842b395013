// Package audit provides the append-only trail of state-changing actions.
// Entries are never updated or deleted; student deletion leaves its audit
// rows behind with a dangling target id.
package audit

import (
	"context"
	"time"
)

// Entry is one immutable audit record.
type Entry struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Actions    []string
	TargetType string
	Limit      int
	Offset     int
}

// Recorder appends and lists audit entries. Record never mutates existing
// rows; a failed Record degrades the system but must not roll back the
// state change it describes.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
}

// Well-known action labels.
const (
	ActionCheckIn          = "check_in"
	ActionCheckOut         = "check_out"
	ActionScanUnregistered = "scan_unregistered"
	ActionUserRegister     = "user_register"
	ActionUserLogin        = "user_login"
	ActionUserUpdate       = "user_update"
	ActionUserDelete       = "user_delete"
	ActionStudentCreate    = "student_create"
	ActionStudentUpdate    = "student_update"
	ActionStudentDelete    = "student_delete"
	ActionTagRegister      = "tag_register"
	ActionDutyAssign       = "duty_assign"
	ActionConfigUpdate     = "config_update"
)
