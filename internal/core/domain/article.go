package domain

import (
	"errors"
	"time"
)

// ArticleStatus represents the moderation state of an article.
type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusDeclined ArticleStatus = "declined"
)

// validTransitions defines the allowed moderation transitions. Approved and
// declined are terminal for a review cycle; the only way out is a content
// edit, which resets the article to pending for re-review.
var validTransitions = map[ArticleStatus][]ArticleStatus{
	StatusPending:  {StatusApproved, StatusDeclined},
	StatusApproved: {StatusPending},
	StatusDeclined: {StatusPending},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrArticleNotFound = errors.New("article not found")
var ErrValidation = errors.New("validation failed")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ArticleStatus) CanTransitionTo(next ArticleStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Article is the core aggregate root of the moderation workflow.
type Article struct {
	ID            string
	Title         string
	Description   string
	Publisher     string
	Tags          []string
	Image         string
	AuthorEmail   string
	AuthorName    string
	AuthorImage   string
	Status        ArticleStatus
	IsPremium     bool
	ViewCount     int64
	DeclineReason string
	CreatedAt     time.Time
}

// Approved is the derived projection of Status. It exists only for the
// serialization boundary; Status is the single source of truth.
func (a *Article) Approved() bool {
	return a.Status == StatusApproved
}

// Publisher is a named content source with no lifecycle beyond create/list.
type Publisher struct {
	ID   string
	Name string
	Logo string
}
