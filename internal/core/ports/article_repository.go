package ports

import (
	"context"

	"github.com/newsphere/content-service/internal/core/domain"
)

// ArticleFilter carries the query parameters for listing articles.
type ArticleFilter struct {
	Status      domain.ArticleStatus // empty = any status
	OwnerEmail  string               // optional: scope to an author
	Publisher   string               // optional: exact publisher match
	Tags        []string             // optional: match any of these tags
	TitleQuery  string               // optional: case-insensitive substring on title
	SortByViews bool                 // order by view count descending
	Limit       int64                // 0 = no limit
}

// ContentUpdate carries the editable fields of an article. Applying it never
// touches the view counter or createdAt; it resets the article to pending.
type ContentUpdate struct {
	Title       string
	Description string
	Publisher   string
	Tags        []string
	Image       string
	IsPremium   bool
}

// ArticleRepository defines persistence operations for articles. Status
// changes, content updates, and view increments are each a single atomic
// document update.
type ArticleRepository interface {
	Insert(ctx context.Context, a *domain.Article) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, error)
	// SetStatus conditionally moves an article from one status to another,
	// writing status and its derived approval projection together. reason is
	// stored when to is declined and cleared otherwise. Returns false when no
	// document matched (id, from), without error.
	SetStatus(ctx context.Context, id string, from, to domain.ArticleStatus, reason string) (bool, error)
	// UpdateContent applies the edit and resets the article to pending,
	// clearing any decline reason, in one atomic update.
	UpdateContent(ctx context.Context, id string, fields ContentUpdate) error
	// IncrementViews atomically increments the view counter.
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
