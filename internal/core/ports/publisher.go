package ports

import (
	"context"

	"github.com/newsphere/content-service/internal/core/domain"
)

// PublisherRepository persists the publisher registry.
type PublisherRepository interface {
	Insert(ctx context.Context, p *domain.Publisher) (string, error)
	List(ctx context.Context) ([]*domain.Publisher, error)
}

// PublisherService defines the create/list operations for publishers.
type PublisherService interface {
	Create(ctx context.Context, principal domain.Principal, name, logo string) (*domain.Publisher, error)
	List(ctx context.Context) ([]*domain.Publisher, error)
}
