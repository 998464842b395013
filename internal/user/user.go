package user

import (
	"context"
	"errors"
	"time"
)

// Roles, in ascending privilege order.
const (
	RoleTeacher = "teacher"
	RoleITStaff = "it_staff"
	RoleAdmin   = "admin"
)

// Level maps a role to its privilege level; unknown roles are level 0.
func Level(role string) int {
	switch role {
	case RoleTeacher:
		return 1
	case RoleITStaff:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// User is a staff account. The password hash never leaves the package.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactive           = errors.New("account is deactivated")
)

// Store is the persistence surface for staff accounts.
type Store interface {
	Create(ctx context.Context, username, hashedPassword, role string) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
