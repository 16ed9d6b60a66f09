package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// Gate implements ports.AccessGate against the user store. The role check
// always goes through the persisted record: a token alone can never grant
// admin rights.
type Gate struct {
	users ports.UserRepository
}

func NewGate(users ports.UserRepository) *Gate {
	return &Gate{users: users}
}

func (g *Gate) RequireAdmin(ctx context.Context, principal domain.Principal) error {
	user, err := g.users.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
		}
		return fmt.Errorf("authorize: %w", err)
	}
	if user.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

func (g *Gate) RequireOwnerOrAdmin(ctx context.Context, principal domain.Principal, ownerEmail string) error {
	if ownerEmail != "" && principal.Email == ownerEmail {
		return nil
	}
	if err := g.RequireAdmin(ctx, principal); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return fmt.Errorf("%w: not the resource owner", domain.ErrForbidden)
		}
		return err
	}
	return nil
}
