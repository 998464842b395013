package scan

import "errors"

// ErrEmptyTag is returned for a blank tag id; anything non-empty is fed to
// the resolver as-is.
var ErrEmptyTag = errors.New("empty tag id")

// ErrUnregisteredTag is returned when the scanned tag matches no student.
// Nothing is mutated besides an audit row for the failed attempt.
var ErrUnregisteredTag = errors.New("tag not registered to any student")

// ErrConflict is returned when the toggle lost the compare-and-swap race
// twice in a row. The scan committed nothing and can simply be re-presented.
var ErrConflict = errors.New("concurrent scan conflict, retry")
