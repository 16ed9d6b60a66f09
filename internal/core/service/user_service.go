package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// UserService implements account operations.
type UserService struct {
	repo   ports.UserRepository
	gate   ports.AccessGate
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, gate ports.AccessGate, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, gate: gate, logger: logger, now: time.Now}
}

// Ensure creates the user record on first sign-in. A duplicate email is not
// an error: the existing record is returned unchanged.
func (s *UserService) Ensure(ctx context.Context, principal domain.Principal, input ports.EnsureUserInput) (*domain.User, error) {
	user := &domain.User{
		Email:     principal.Email,
		Name:      input.Name,
		Image:     input.Image,
		Role:      domain.RoleMember,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return s.repo.FindByEmail(ctx, principal.Email)
		}
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("user created on first sign-in")
	return created, nil
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, principal domain.Principal) ([]*domain.User, error) {
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// SetRole changes a user's role. Admin only.
func (s *UserService) SetRole(ctx context.Context, principal domain.Principal, id, role string) error {
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("role", role).Str("changed_by", principal.Email).Msg("user role updated")
	return nil
}

// Delete removes a user. Admin only; users are never deleted implicitly.
func (s *UserService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("deleted_by", principal.Email).Msg("user deleted")
	return nil
}
