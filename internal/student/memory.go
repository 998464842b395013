package student

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store for dev mode and tests. A single mutex
// serializes all mutations, which trivially satisfies the per-student
// atomicity the scan engine needs.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*Student
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1, byID: make(map[int64]*Student)}
}

func (m *Memory) Create(_ context.Context, name, class string, imageURL *string) (*Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Student{
		ID:        m.nextID,
		Name:      name,
		Class:     class,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	m.nextID++
	m.byID[s.ID] = s
	out := *s
	return &out, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *Memory) List(_ context.Context) ([]Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]Student, 0, len(m.byID))
	for _, s := range m.byID {
		res = append(res, *s)
	}
	return res, nil
}

func (m *Memory) Update(_ context.Context, id int64, name, class string, imageURL *string) (*Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Name, s.Class = name, class
	if imageURL != nil {
		s.ImageURL = imageURL
	}
	out := *s
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *Memory) ResolveTag(_ context.Context, tagID string) (*Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.TagID != nil && *s.TagID == tagID {
			out := *s
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) AssignTag(_ context.Context, id int64, tagID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	for _, s := range m.byID {
		if s.ID != id && s.TagID != nil && *s.TagID == tagID {
			return ErrTagTaken
		}
	}
	target.TagID = &tagID
	return nil
}

func (m *Memory) SetAttendance(_ context.Context, id int64, from, to bool, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if s.InSchool != from {
		return ErrStaleFlag
	}
	s.InSchool = to
	ts := at
	s.LastScan = &ts
	return nil
}
