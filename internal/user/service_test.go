package user

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemory())
	ctx := context.Background()

	u, err := svc.Register(ctx, "ms.lee", "hunter2hunter2", RoleTeacher)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.HashedPassword == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}

	got, err := svc.Authenticate(ctx, "ms.lee", "hunter2hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %d vs %d", got.ID, u.ID)
	}
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	svc := NewService(NewMemory())
	ctx := context.Background()
	_, _ = svc.Register(ctx, "ms.lee", "correct", RoleTeacher)

	if _, err := svc.Authenticate(ctx, "ms.lee", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("missing user must look like bad credentials, got %v", err)
	}
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	ctx := context.Background()
	u, _ := svc.Register(ctx, "ms.lee", "correct", RoleTeacher)
	_ = store.SetActive(ctx, u.ID, false)

	if _, err := svc.Authenticate(ctx, "ms.lee", "correct"); !errors.Is(err, ErrInactive) {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}

func TestRegisterDefaultsUnknownRole(t *testing.T) {
	svc := NewService(NewMemory())
	u, err := svc.Register(context.Background(), "x", "pw", "superuser")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != RoleTeacher {
		t.Fatalf("unknown role should fall back to teacher, got %s", u.Role)
	}
}

func TestRoleLevels(t *testing.T) {
	if !(Level(RoleAdmin) > Level(RoleITStaff) && Level(RoleITStaff) > Level(RoleTeacher)) {
		t.Fatal("role ordering broken")
	}
	if Level("nope") != 0 {
		t.Fatal("unknown role must be level 0")
	}
}
