package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubArticleRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Article
	nextID    int
	listCalls int
	insertErr error
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{byID: make(map[string]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Insert(_ context.Context, a *domain.Article) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	id := fmt.Sprintf("art_%d", r.nextID)
	clone := cloneArticle(a)
	clone.ID = id
	r.byID[id] = clone
	return id, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

// SetStatus mirrors the conditional Mongo update: no match means no write.
func (r *stubArticleRepo) SetStatus(_ context.Context, id string, from, to domain.ArticleStatus, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	if to == domain.StatusDeclined {
		a.DeclineReason = reason
	} else {
		a.DeclineReason = ""
	}
	return true, nil
}

func (r *stubArticleRepo) UpdateContent(_ context.Context, id string, fields ports.ContentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	a.Title = fields.Title
	a.Description = fields.Description
	a.Publisher = fields.Publisher
	a.Tags = fields.Tags
	a.Image = fields.Image
	a.IsPremium = fields.IsPremium
	a.Status = domain.StatusPending
	a.DeclineReason = ""
	return nil
}

func (r *stubArticleRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	a.ViewCount++
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubArticleRepo) List(_ context.Context, f ports.ArticleFilter) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	var matched []*domain.Article
	for _, a := range r.byID {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.OwnerEmail != "" && a.AuthorEmail != f.OwnerEmail {
			continue
		}
		if f.Publisher != "" && a.Publisher != f.Publisher {
			continue
		}
		if f.TitleQuery != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.TitleQuery)) {
			continue
		}
		matched = append(matched, cloneArticle(a))
	}
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

type stubGate struct {
	admins map[string]bool
}

func newStubGate(adminEmails ...string) *stubGate {
	g := &stubGate{admins: make(map[string]bool)}
	for _, e := range adminEmails {
		g.admins[e] = true
	}
	return g
}

func (g *stubGate) RequireAdmin(_ context.Context, p domain.Principal) error {
	if g.admins[p.Email] {
		return nil
	}
	return domain.ErrForbidden
}

func (g *stubGate) RequireOwnerOrAdmin(ctx context.Context, p domain.Principal, ownerEmail string) error {
	if ownerEmail != "" && p.Email == ownerEmail {
		return nil
	}
	return g.RequireAdmin(ctx, p)
}

type stubTrendingCache struct {
	cached   []*domain.Article
	getErr   error
	setErr   error
	setCalls int
}

func (c *stubTrendingCache) Get(_ context.Context) ([]*domain.Article, error) {
	return c.cached, c.getErr
}

func (c *stubTrendingCache) Set(_ context.Context, articles []*domain.Article) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.setCalls++
	c.cached = articles
	return nil
}

var (
	member = domain.Principal{Subject: "u1", Email: "alice@example.com"}
	admin  = domain.Principal{Subject: "u2", Email: "mod@example.com"}
	other  = domain.Principal{Subject: "u3", Email: "bob@example.com"}
)

func newTestArticleService(repo *stubArticleRepo) *ArticleService {
	return NewArticleService(repo, newStubGate(admin.Email), &stubTrendingCache{}, zerolog.Nop())
}

func submitTestArticle(t *testing.T, svc *ArticleService, p domain.Principal) *domain.Article {
	t.Helper()
	article, err := svc.Submit(context.Background(), p, ports.SubmitArticleInput{
		Title:       "T",
		Description: "D",
		Publisher:   "P",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return article
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestArticleService_Submit_CreatesPending(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)

	article := submitTestArticle(t, svc, member)

	if article.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", article.Status)
	}
	if article.AuthorEmail != member.Email {
		t.Fatalf("author email not taken from principal: %s", article.AuthorEmail)
	}
	if article.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
	if article.ViewCount != 0 {
		t.Fatalf("expected zero views, got %d", article.ViewCount)
	}
}

func TestArticleService_Submit_Validation(t *testing.T) {
	svc := newTestArticleService(newStubArticleRepo())

	cases := []ports.SubmitArticleInput{
		{Description: "D", Publisher: "P"},
		{Title: "T", Publisher: "P"},
		{Title: "T", Description: "D"},
		{Title: "  ", Description: "D", Publisher: "P"},
	}
	for i, input := range cases {
		if _, err := svc.Submit(context.Background(), member, input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Approve / Decline
// ---------------------------------------------------------------------------

func TestArticleService_Approve_Success(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	if !got.Approved() {
		t.Fatalf("approval projection disagrees with status")
	}
}

func TestArticleService_Approve_RequiresAdmin(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Approve(context.Background(), member, article.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("article mutated by forbidden approve: %s", got.Status)
	}
}

func TestArticleService_Approve_Idempotent(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("second approve should be a no-op success, got %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
}

func TestArticleService_Approve_DeclinedFails(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Decline(context.Background(), admin, article.ID, "spam"); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if err := svc.Approve(context.Background(), admin, article.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestArticleService_Approve_NotFound(t *testing.T) {
	svc := newTestArticleService(newStubArticleRepo())

	if err := svc.Approve(context.Background(), admin, "art_missing"); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_Decline_Success(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Decline(context.Background(), admin, article.ID, "spam"); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusDeclined {
		t.Fatalf("expected declined, got %s", got.Status)
	}
	if got.DeclineReason != "spam" {
		t.Fatalf("expected reason to be stored, got %q", got.DeclineReason)
	}
	if got.Approved() {
		t.Fatalf("declined article reports approved")
	}
}

func TestArticleService_Decline_EmptyReason(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	for _, reason := range []string{"", "   "} {
		if err := svc.Decline(context.Background(), admin, article.ID, reason); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for reason %q, got %v", reason, err)
		}
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusPending || got.DeclineReason != "" {
		t.Fatalf("empty-reason decline mutated the article: %+v", got)
	}
}

func TestArticleService_Decline_ApprovedFails(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.Decline(context.Background(), admin, article.ID, "late"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Edit / Delete
// ---------------------------------------------------------------------------

func TestArticleService_Edit_ResetsDeclinedToPending(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Decline(context.Background(), admin, article.ID, "thin content"); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	err := svc.Edit(context.Background(), member, article.ID, ports.EditArticleInput{
		Title:       "T2",
		Description: "D2",
		Publisher:   "P",
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("edited article should be pending again, got %s", got.Status)
	}
	if got.DeclineReason != "" {
		t.Fatalf("decline reason should be cleared, got %q", got.DeclineReason)
	}
	if got.Title != "T2" {
		t.Fatalf("content not updated: %q", got.Title)
	}
}

func TestArticleService_Edit_Forbidden(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	err := svc.Edit(context.Background(), other, article.ID, ports.EditArticleInput{
		Title: "T2", Description: "D2", Publisher: "P",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestArticleService_Edit_AdminAllowed(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	err := svc.Edit(context.Background(), admin, article.ID, ports.EditArticleInput{
		Title: "T2", Description: "D2", Publisher: "P",
	})
	if err != nil {
		t.Fatalf("admin edit failed: %v", err)
	}
}

func TestArticleService_Delete_OwnerAllowed(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Delete(context.Background(), member, article.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), article.ID); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("article should be gone, got %v", err)
	}
}

func TestArticleService_Delete_Forbidden(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	if err := svc.Delete(context.Background(), other, article.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listings / views / trending
// ---------------------------------------------------------------------------

func TestArticleService_ListApproved_HidesPending(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	approved, err := svc.ListApproved(context.Background(), ports.SearchArticlesInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(approved) != 0 {
		t.Fatalf("pending article visible in approved listing")
	}

	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	approved, _ = svc.ListApproved(context.Background(), ports.SearchArticlesInput{})
	if len(approved) != 1 {
		t.Fatalf("expected 1 approved article, got %d", len(approved))
	}
}

func TestArticleService_ListPending_RequiresAdmin(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	submitTestArticle(t, svc, member)

	if _, err := svc.ListPending(context.Background(), member); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	queue, err := svc.ListPending(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected 1 pending article, got %d", len(queue))
	}
}

func TestArticleService_ListByOwner_AnyStatus(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	a1 := submitTestArticle(t, svc, member)
	submitTestArticle(t, svc, other)

	if err := svc.Decline(context.Background(), admin, a1.ID, "spam"); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	mine, err := svc.ListByOwner(context.Background(), member)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.StatusDeclined {
		t.Fatalf("owner listing should include declined article: %+v", mine)
	}
}

func TestArticleService_RecordView_ConcurrentIncrements(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	const viewers = 50
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			if err := svc.RecordView(context.Background(), article.ID); err != nil {
				t.Errorf("record view: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.ViewCount != viewers {
		t.Fatalf("expected %d views, got %d", viewers, got.ViewCount)
	}
}

func TestArticleService_RecordView_NotGatedByStatus(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	article := submitTestArticle(t, svc, member)

	// Still pending: the view endpoint is intentionally not status-gated.
	if err := svc.RecordView(context.Background(), article.ID); err != nil {
		t.Fatalf("view of pending article should count: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), article.ID)
	if got.ViewCount != 1 {
		t.Fatalf("expected 1 view, got %d", got.ViewCount)
	}
}

func TestArticleService_Trending_CacheHit(t *testing.T) {
	repo := newStubArticleRepo()
	cache := &stubTrendingCache{cached: []*domain.Article{{ID: "art_1", Title: "cached"}}}
	svc := NewArticleService(repo, newStubGate(admin.Email), cache, zerolog.Nop())

	articles, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "cached" {
		t.Fatalf("expected cached listing, got %+v", articles)
	}
	if repo.listCalls != 0 {
		t.Fatalf("cache hit should not query the store")
	}
}

func TestArticleService_Trending_CacheMissFills(t *testing.T) {
	repo := newStubArticleRepo()
	cache := &stubTrendingCache{}
	svc := NewArticleService(repo, newStubGate(admin.Email), cache, zerolog.Nop())

	article := submitTestArticle(t, svc, member)
	if err := svc.Approve(context.Background(), admin, article.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	articles, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected cache fill, got %d set calls", cache.setCalls)
	}
}

func TestArticleService_Trending_CacheErrorFallsBack(t *testing.T) {
	repo := newStubArticleRepo()
	cache := &stubTrendingCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewArticleService(repo, newStubGate(admin.Email), cache, zerolog.Nop())

	if _, err := svc.Trending(context.Background()); err != nil {
		t.Fatalf("trending should degrade to the store, got %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected store query on cache failure")
	}
}

// Guard against accidental clock coupling in Submit.
func TestArticleService_Submit_UsesInjectedClock(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	article := submitTestArticle(t, svc, member)
	if !article.CreatedAt.Equal(fixed) {
		t.Fatalf("expected createdAt %v, got %v", fixed, article.CreatedAt)
	}
}
