package ports

import (
	"context"
	"time"

	"github.com/newsphere/content-service/internal/core/domain"
)

// SubscriptionService computes entitlement and activates premium plans.
type SubscriptionService interface {
	// Entitlement evaluates the caller's premium status at the current
	// instant, reconciling an expired stored value to null as a side effect.
	Entitlement(ctx context.Context, principal domain.Principal) (domain.Entitlement, error)
	// Activate maps a recognized plan to an absolute expiry (now + plan
	// duration) and persists it, overwriting any prior expiry.
	Activate(ctx context.Context, principal domain.Principal, plan string) (time.Time, error)
}
