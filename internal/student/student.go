package student

import (
	"context"
	"errors"
	"time"
)

// Student is a tracked pupil. TagID is nil until a tag is registered for
// them; at most one student owns a given tag at any time.
type Student struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Class     string     `json:"class"`
	TagID     *string    `json:"tag_id,omitempty"`
	InSchool  bool       `json:"in_school"`
	LastScan  *time.Time `json:"last_scan,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ErrNotFound is returned when no student matches the given id or tag.
var ErrNotFound = errors.New("student not found")

// ErrStaleFlag is returned when a conditional attendance update finds the
// flag already changed by a concurrent scan. Callers re-read and retry.
var ErrStaleFlag = errors.New("attendance flag changed concurrently")

// ErrTagTaken is returned when registering a tag that another student
// already owns. Assignment fails rather than stealing the tag.
var ErrTagTaken = errors.New("tag already registered to another student")

// Store is the persistence surface the rest of the application works
// against. Implemented by Repository (Postgres) and Memory.
type Store interface {
	Create(ctx context.Context, name, class string, imageURL *string) (*Student, error)
	Get(ctx context.Context, id int64) (*Student, error)
	List(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, id int64, name, class string, imageURL *string) (*Student, error)
	Delete(ctx context.Context, id int64) error

	// ResolveTag returns the single student owning tagID, or ErrNotFound.
	ResolveTag(ctx context.Context, tagID string) (*Student, error)

	// AssignTag binds tagID to the student; ErrTagTaken when owned elsewhere.
	AssignTag(ctx context.Context, id int64, tagID string) error

	// SetAttendance flips the flag from the observed value to its negation
	// and stamps last_scan, as one atomic write. ErrStaleFlag when the
	// observed value no longer matches.
	SetAttendance(ctx context.Context, id int64, from, to bool, at time.Time) error
}
