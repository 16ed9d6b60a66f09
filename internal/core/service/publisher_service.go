package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// PublisherService maintains the publisher registry.
type PublisherService struct {
	repo   ports.PublisherRepository
	gate   ports.AccessGate
	logger zerolog.Logger
}

func NewPublisherService(repo ports.PublisherRepository, gate ports.AccessGate, logger zerolog.Logger) *PublisherService {
	return &PublisherService{repo: repo, gate: gate, logger: logger}
}

// Create registers a new publisher. Admin only.
func (s *PublisherService) Create(ctx context.Context, principal domain.Principal, name, logo string) (*domain.Publisher, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: publisher name is required", domain.ErrValidation)
	}
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return nil, err
	}

	publisher := &domain.Publisher{Name: name, Logo: logo}
	id, err := s.repo.Insert(ctx, publisher)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	publisher.ID = id

	s.logger.Info().Str("publisher", name).Str("created_by", principal.Email).Msg("publisher created")
	return publisher, nil
}

func (s *PublisherService) List(ctx context.Context) ([]*domain.Publisher, error) {
	return s.repo.List(ctx)
}
