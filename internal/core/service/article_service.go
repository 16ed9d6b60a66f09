package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

const trendingLimit = 6

// TrendingCache abstracts the short-lived cache in front of the trending
// query (Redis). Get returns (nil, nil) on a miss.
type TrendingCache interface {
	Get(ctx context.Context) ([]*domain.Article, error)
	Set(ctx context.Context, articles []*domain.Article) error
}

// ArticleService implements the moderation workflow over the article store.
type ArticleService struct {
	repo     ports.ArticleRepository
	gate     ports.AccessGate
	trending TrendingCache
	logger   zerolog.Logger
	now      func() time.Time
}

func NewArticleService(repo ports.ArticleRepository, gate ports.AccessGate, trending TrendingCache, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		repo:     repo,
		gate:     gate,
		trending: trending,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit creates a new article in pending status.
func (s *ArticleService) Submit(ctx context.Context, principal domain.Principal, input ports.SubmitArticleInput) (*domain.Article, error) {
	if err := validateContent(input.Title, input.Description, input.Publisher); err != nil {
		return nil, err
	}

	article := &domain.Article{
		Title:       input.Title,
		Description: input.Description,
		Publisher:   input.Publisher,
		Tags:        input.Tags,
		Image:       input.Image,
		AuthorEmail: principal.Email,
		AuthorName:  input.AuthorName,
		AuthorImage: input.AuthorImage,
		Status:      domain.StatusPending,
		IsPremium:   input.IsPremium,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.repo.Insert(ctx, article)
	if err != nil {
		s.logger.Error().Err(err).Str("author", principal.Email).Msg("failed to insert article")
		return nil, err
	}
	article.ID = id

	s.logger.Info().Str("article_id", id).Str("author", principal.Email).Bool("premium", article.IsPremium).Msg("article submitted")
	return article, nil
}

// Approve moves a pending article to approved. Approving an already-approved
// article is a no-op success; approving a declined one is an invalid
// transition (re-review requires an explicit edit).
func (s *ArticleService) Approve(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return err
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article.Status == domain.StatusApproved {
		s.logger.Debug().Str("article_id", id).Msg("article already approved")
		return nil
	}
	if !article.Status.CanTransitionTo(domain.StatusApproved) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, domain.StatusApproved)
	}

	ok, err := s.repo.SetStatus(ctx, id, domain.StatusPending, domain.StatusApproved, "")
	if err != nil {
		return fmt.Errorf("approve article: %w", err)
	}
	if !ok {
		// Raced with a concurrent moderation decision; re-read to settle.
		return s.settleRace(ctx, id, domain.StatusApproved)
	}

	s.logger.Info().Str("article_id", id).Str("moderator", principal.Email).Msg("article approved")
	return nil
}

// Decline moves a pending article to declined with a mandatory reason. An
// empty reason fails validation before anything is read or written.
func (s *ArticleService) Decline(ctx context.Context, principal domain.Principal, id string, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: decline reason is required", domain.ErrValidation)
	}
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return err
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article.Status == domain.StatusDeclined {
		s.logger.Debug().Str("article_id", id).Msg("article already declined")
		return nil
	}
	if !article.Status.CanTransitionTo(domain.StatusDeclined) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, domain.StatusDeclined)
	}

	ok, err := s.repo.SetStatus(ctx, id, domain.StatusPending, domain.StatusDeclined, reason)
	if err != nil {
		return fmt.Errorf("decline article: %w", err)
	}
	if !ok {
		return s.settleRace(ctx, id, domain.StatusDeclined)
	}

	s.logger.Info().Str("article_id", id).Str("moderator", principal.Email).Str("reason", reason).Msg("article declined")
	return nil
}

// settleRace re-reads an article after a conditional status write matched
// nothing. Landing on the wanted terminal state is a no-op success.
func (s *ArticleService) settleRace(ctx context.Context, id string, wanted domain.ArticleStatus) error {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article.Status == wanted {
		return nil
	}
	return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, wanted)
}

// Edit updates an article's content. Editing a non-pending article resets it
// to pending: moderation decisions are never silently preserved across a
// content change.
func (s *ArticleService) Edit(ctx context.Context, principal domain.Principal, id string, input ports.EditArticleInput) error {
	if err := validateContent(input.Title, input.Description, input.Publisher); err != nil {
		return err
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.RequireOwnerOrAdmin(ctx, principal, article.AuthorEmail); err != nil {
		return err
	}

	err = s.repo.UpdateContent(ctx, id, ports.ContentUpdate{
		Title:       input.Title,
		Description: input.Description,
		Publisher:   input.Publisher,
		Tags:        input.Tags,
		Image:       input.Image,
		IsPremium:   input.IsPremium,
	})
	if err != nil {
		return fmt.Errorf("edit article: %w", err)
	}

	s.logger.Info().Str("article_id", id).Str("editor", principal.Email).Msg("article edited, back to pending")
	return nil
}

// Delete removes an article entirely. Permitted from any state for the owner
// or an admin.
func (s *ArticleService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.RequireOwnerOrAdmin(ctx, principal, article.AuthorEmail); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.logger.Info().Str("article_id", id).Str("deleted_by", principal.Email).Msg("article deleted")
	return nil
}

// Get returns a single article by id regardless of status.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

// ListApproved returns publicly visible articles, optionally filtered by
// publisher, tags, or a title substring.
func (s *ArticleService) ListApproved(ctx context.Context, input ports.SearchArticlesInput) ([]*domain.Article, error) {
	return s.repo.List(ctx, ports.ArticleFilter{
		Status:     domain.StatusApproved,
		Publisher:  input.Publisher,
		Tags:       input.Tags,
		TitleQuery: input.TitleQuery,
	})
}

// ListPending returns the moderation queue. Admin only.
func (s *ArticleService) ListPending(ctx context.Context, principal domain.Principal) ([]*domain.Article, error) {
	if err := s.gate.RequireAdmin(ctx, principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ArticleFilter{Status: domain.StatusPending})
}

// ListByOwner returns the caller's own articles in any status.
func (s *ArticleService) ListByOwner(ctx context.Context, principal domain.Principal) ([]*domain.Article, error) {
	return s.repo.List(ctx, ports.ArticleFilter{OwnerEmail: principal.Email})
}

// Trending returns the top approved articles by view count, served through a
// short-TTL cache. Cache failures degrade to the store query.
func (s *ArticleService) Trending(ctx context.Context) ([]*domain.Article, error) {
	cached, err := s.trending.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("trending cache read failed, querying store")
	} else if cached != nil {
		return cached, nil
	}

	articles, err := s.repo.List(ctx, ports.ArticleFilter{
		Status:      domain.StatusApproved,
		SortByViews: true,
		Limit:       trendingLimit,
	})
	if err != nil {
		return nil, err
	}

	if err := s.trending.Set(ctx, articles); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fill trending cache")
	}
	return articles, nil
}

// RecordView atomically increments the view counter. Views are not gated by
// moderation status: the public listing already hides unapproved articles,
// and trending derives from the same counter.
func (s *ArticleService) RecordView(ctx context.Context, id string) error {
	return s.repo.IncrementViews(ctx, id)
}

func validateContent(title, description, publisher string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case strings.TrimSpace(description) == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case strings.TrimSpace(publisher) == "":
		return fmt.Errorf("%w: publisher is required", domain.ErrValidation)
	}
	return nil
}
