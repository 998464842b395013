package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists audit entries in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Recorder = (*Repository)(nil)

// Record appends one entry. Only INSERT is ever issued against audit_logs.
func (r *Repository) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, user_id, action, target_type, target_id, details, ip_address, user_agent, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, e.ID, nullableID(e.UserID), e.Action, e.TargetType, e.TargetID, e.Details, e.IPAddress, e.UserAgent, e.CreatedAt)
	return err
}

// List returns entries newest first, with optional filters.
func (r *Repository) List(ctx context.Context, f Filter) ([]Entry, error) {
	limit, offset := f.Limit, f.Offset
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, COALESCE(user_id, 0), action, target_type, target_id, details, ip_address, user_agent, created_at FROM audit_logs`
	args := []any{}
	clauses := []string{}
	if len(f.Actions) > 0 {
		args = append(args, f.Actions)
		clauses = append(clauses, fmt.Sprintf("action = ANY($%d)", len(args)))
	}
	if f.TargetType != "" {
		args = append(args, f.TargetType)
		clauses = append(clauses, fmt.Sprintf("target_type = $%d", len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.TargetType, &e.TargetID, &e.Details, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
