package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, newStubGate(admin.Email), zerolog.Nop())
}

func TestUserService_Ensure_CreatesMember(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Ensure(context.Background(), member, ports.EnsureUserInput{Name: "Alice"})
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if user.Email != member.Email {
		t.Fatalf("email not taken from principal: %s", user.Email)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("new users start as members, got %s", user.Role)
	}
	if user.ID == "" {
		t.Fatalf("expected an assigned id")
	}
}

func TestUserService_Ensure_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	first, err := svc.Ensure(context.Background(), member, ports.EnsureUserInput{Name: "Alice"})
	if err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	second, err := svc.Ensure(context.Background(), member, ports.EnsureUserInput{Name: "Someone Else"})
	if err != nil {
		t.Fatalf("second ensure should be a no-op success, got %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("second ensure returned a different record: %s vs %s", second.ID, first.ID)
	}
	if second.Name != "Alice" {
		t.Fatalf("existing record must be returned unchanged, got name %q", second.Name)
	}
	users, _ := repo.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("expected a single record, got %d", len(users))
	}
}

func TestUserService_List_RequiresAdmin(t *testing.T) {
	repo := newStubUserRepo(memberUser(member.Email))
	svc := newTestUserService(repo)

	if _, err := svc.List(context.Background(), member); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.List(context.Background(), admin); err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
}

func TestUserService_SetRole(t *testing.T) {
	repo := newStubUserRepo(memberUser(member.Email))
	svc := newTestUserService(repo)

	target, _ := repo.FindByEmail(context.Background(), member.Email)

	if err := svc.SetRole(context.Background(), admin, target.ID, "superuser"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
	if err := svc.SetRole(context.Background(), member, target.ID, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin caller, got %v", err)
	}

	if err := svc.SetRole(context.Background(), admin, target.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), target.ID)
	if got.Role != domain.RoleAdmin {
		t.Fatalf("role not updated, got %s", got.Role)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo(memberUser(member.Email))
	svc := newTestUserService(repo)

	target, _ := repo.FindByEmail(context.Background(), member.Email)

	if err := svc.Delete(context.Background(), member, target.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), target.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
}
