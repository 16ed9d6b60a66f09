package ports

import (
	"context"
	"time"

	"github.com/newsphere/content-service/internal/core/domain"
)

// UserRepository defines persistence operations for users, keyed by a unique
// id and a unique email.
type UserRepository interface {
	// Insert creates a user. Returns domain.ErrUserExists when the email is
	// already taken (unique index).
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	// SetPremiumExpiry overwrites the premium expiry in a single atomic
	// update keyed by email. The last writer for a given email wins.
	SetPremiumExpiry(ctx context.Context, email string, expiry time.Time) error
	// ClearExpiredPremium nulls the expiry only if it is still <= now, so a
	// concurrent activation is never clobbered.
	ClearExpiredPremium(ctx context.Context, email string, now time.Time) error
	Delete(ctx context.Context, id string) error
}
