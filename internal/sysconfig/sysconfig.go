// Package sysconfig holds the small set of runtime-adjustable settings the
// admin dashboard edits, most notably the NFC scan timeout handed through
// to the reader.
package sysconfig

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"
)

// Config is the single active settings row.
type Config struct {
	ScanTimeoutSeconds    int       `json:"nfc_scan_timeout"`
	SessionTimeoutMinutes int       `json:"session_timeout"`
	NotificationsEnabled  bool      `json:"enable_notifications"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Defaults returns the settings used before an admin ever saves any.
func Defaults() Config {
	return Config{ScanTimeoutSeconds: 10, SessionTimeoutMinutes: 30, NotificationsEnabled: true}
}

// ScanTimeout is the configured reader wait as a duration.
func (c Config) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutSeconds) * time.Second
}

// Store reads and replaces the settings row.
type Store interface {
	Get(ctx context.Context) (Config, error)
	Put(ctx context.Context, c Config) error
}

// Repository is the Postgres-backed store; a single-row table holds the
// settings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Get(ctx context.Context) (Config, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT scan_timeout_seconds, session_timeout_minutes, notifications_enabled, updated_at
		FROM system_config WHERE id = 1
	`)
	var c Config
	if err := row.Scan(&c.ScanTimeoutSeconds, &c.SessionTimeoutMinutes, &c.NotificationsEnabled, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(), nil
		}
		return Config{}, err
	}
	return c, nil
}

func (r *Repository) Put(ctx context.Context, c Config) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_config (id, scan_timeout_seconds, session_timeout_minutes, notifications_enabled, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			scan_timeout_seconds = EXCLUDED.scan_timeout_seconds,
			session_timeout_minutes = EXCLUDED.session_timeout_minutes,
			notifications_enabled = EXCLUDED.notifications_enabled,
			updated_at = NOW()
	`, c.ScanTimeoutSeconds, c.SessionTimeoutMinutes, c.NotificationsEnabled)
	return err
}

// Memory is an in-process Store for dev mode and tests.
type Memory struct {
	mu  sync.Mutex
	cfg Config
	set bool
}

// NewMemory creates a store serving Defaults until Put is called.
func NewMemory() *Memory { return &Memory{} }

var _ Store = (*Memory)(nil)

func (m *Memory) Get(_ context.Context) (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Defaults(), nil
	}
	return m.cfg, nil
}

func (m *Memory) Put(_ context.Context, c Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UpdatedAt = time.Now().UTC()
	m.cfg = c
	m.set = true
	return nil
}
