// Package duty tracks which teacher is currently on attendance duty. At
// most one assignment is active; reassigning supersedes the previous
// holder and no history is kept beyond the audit trail.
package duty

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"
)

// Assignment is the active duty holder.
type Assignment struct {
	TeacherID   int64     `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// Tracker holds the current duty assignment. Current returns (nil, nil)
// when nobody has ever been assigned.
type Tracker interface {
	Assign(ctx context.Context, teacherID int64, teacherName string) error
	Current(ctx context.Context) (*Assignment, error)
}

// Repository is the Postgres-backed tracker; a single-row table holds the
// active assignment.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Tracker = (*Repository)(nil)

// Assign replaces the current holder unconditionally. Reassigning the same
// teacher is a no-op semantically but still refreshes the timestamp.
func (r *Repository) Assign(ctx context.Context, teacherID int64, teacherName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO duty_assignments (id, teacher_id, assigned_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET teacher_id = EXCLUDED.teacher_id, assigned_at = NOW()
	`, teacherID)
	return err
}

// Current returns the active assignment joined with the teacher's name.
func (r *Repository) Current(ctx context.Context) (*Assignment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT d.teacher_id, COALESCE(u.username, ''), d.assigned_at
		FROM duty_assignments d
		LEFT JOIN users u ON u.id = d.teacher_id
		WHERE d.id = 1
	`)
	var a Assignment
	if err := row.Scan(&a.TeacherID, &a.TeacherName, &a.AssignedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Memory is an in-process tracker for dev mode and tests.
type Memory struct {
	mu      sync.Mutex
	current *Assignment
}

// NewMemory creates an empty tracker.
func NewMemory() *Memory { return &Memory{} }

var _ Tracker = (*Memory)(nil)

func (m *Memory) Assign(_ context.Context, teacherID int64, teacherName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Assignment{TeacherID: teacherID, TeacherName: teacherName, AssignedAt: time.Now().UTC()}
	return nil
}

func (m *Memory) Current(_ context.Context) (*Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, nil
	}
	out := *m.current
	return &out, nil
}
