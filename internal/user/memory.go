package user

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store for dev mode and tests.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*User
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{nextID: 1, byID: make(map[int64]*User)}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, username, hashedPassword, role string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}
	u := &User{
		ID:             m.nextID,
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	m.nextID++
	m.byID[u.ID] = u
	out := *u
	return &out, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *Memory) GetByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]User, 0, len(m.byID))
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			res = append(res, *u)
		}
	}
	return res, nil
}

func (m *Memory) UpdateRole(_ context.Context, id int64, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *Memory) SetActive(_ context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	return nil
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
