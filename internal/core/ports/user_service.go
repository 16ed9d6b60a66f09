package ports

import (
	"context"

	"github.com/newsphere/content-service/internal/core/domain"
)

// EnsureUserInput carries the profile fields captured on first sign-in.
type EnsureUserInput struct {
	Name  string
	Image string
}

// UserService defines account use-cases. Ensure is idempotent: a duplicate
// email is treated as success-with-no-op, returning the existing record.
type UserService interface {
	Ensure(ctx context.Context, principal domain.Principal, input EnsureUserInput) (*domain.User, error)
	List(ctx context.Context, principal domain.Principal) ([]*domain.User, error)
	SetRole(ctx context.Context, principal domain.Principal, id, role string) error
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
