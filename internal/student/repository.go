package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists students in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

const studentCols = `id, name, class, tag_id, in_school, last_scan, image_url, created_at`

func scanStudent(row interface{ Scan(...any) error }) (*Student, error) {
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.Class, &s.TagID, &s.InSchool, &s.LastScan, &s.ImageURL, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student with name and class only; the tag comes later.
func (r *Repository) Create(ctx context.Context, name, class string, imageURL *string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (name, class, image_url)
		VALUES ($1, $2, $3)
		RETURNING `+studentCols, name, class, imageURL)
	return scanStudent(row)
}

// Get returns a student by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentCols+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// List returns all students ordered by class then name.
func (r *Repository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentCols+` FROM students ORDER BY class, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

// Update changes the descriptive fields. Attendance state is owned by the
// scan engine and is not touched here.
func (r *Repository) Update(ctx context.Context, id int64, name, class string, imageURL *string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE students
		SET name = $2, class = $3, image_url = COALESCE($4, image_url)
		WHERE id = $1
		RETURNING `+studentCols, id, name, class, imageURL)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// Delete hard-removes a student. Audit rows referencing the id are retained.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveTag returns the student owning tagID, or ErrNotFound.
func (r *Repository) ResolveTag(ctx context.Context, tagID string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentCols+` FROM students WHERE tag_id = $1`, tagID)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// AssignTag binds tagID to the student. The partial unique index on tag_id
// rejects a tag another student owns; that surfaces as ErrTagTaken.
func (r *Repository) AssignTag(ctx context.Context, id int64, tagID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE students SET tag_id = $2 WHERE id = $1`, id, tagID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrTagTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAttendance performs the compare-and-swap toggle: the flag and the scan
// timestamp are written together, and only when the flag still holds the
// value the caller observed.
func (r *Repository) SetAttendance(ctx context.Context, id int64, from, to bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students
		SET in_school = $3, last_scan = $4
		WHERE id = $1 AND in_school = $2
	`, id, from, to, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either a concurrent scan won the race or the student is gone;
		// disambiguate so the engine can retry only the former.
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return gerr
		}
		return ErrStaleFlag
	}
	return nil
}
