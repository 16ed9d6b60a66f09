package ports

import (
	"context"

	"github.com/newsphere/content-service/internal/core/domain"
)

// SubmitArticleInput carries all data needed to submit a new article.
// Authorship comes from the verified principal, never from the payload.
type SubmitArticleInput struct {
	Title       string
	Description string
	Publisher   string
	Tags        []string
	Image       string
	IsPremium   bool
	AuthorName  string
	AuthorImage string
}

// EditArticleInput carries the editable content fields.
type EditArticleInput struct {
	Title       string
	Description string
	Publisher   string
	Tags        []string
	Image       string
	IsPremium   bool
}

// SearchArticlesInput carries the public listing filters.
type SearchArticlesInput struct {
	Publisher  string
	Tags       []string
	TitleQuery string
}

// ArticleService defines the moderation use-case operations.
type ArticleService interface {
	Submit(ctx context.Context, principal domain.Principal, input SubmitArticleInput) (*domain.Article, error)
	Edit(ctx context.Context, principal domain.Principal, id string, input EditArticleInput) error
	Delete(ctx context.Context, principal domain.Principal, id string) error
	Approve(ctx context.Context, principal domain.Principal, id string) error
	Decline(ctx context.Context, principal domain.Principal, id string, reason string) error
	Get(ctx context.Context, id string) (*domain.Article, error)
	ListApproved(ctx context.Context, input SearchArticlesInput) ([]*domain.Article, error)
	ListPending(ctx context.Context, principal domain.Principal) ([]*domain.Article, error)
	ListByOwner(ctx context.Context, principal domain.Principal) ([]*domain.Article, error)
	Trending(ctx context.Context) ([]*domain.Article, error)
	RecordView(ctx context.Context, id string) error
}
