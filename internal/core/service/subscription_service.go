package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// planDurations is the closed set of recognized subscription plans: a short
// probe plan and two multi-day tiers.
var planDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"5d":  5 * 24 * time.Hour,
	"10d": 10 * 24 * time.Hour,
}

// SubscriptionService evaluates entitlement and activates premium plans.
type SubscriptionService struct {
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewSubscriptionService(users ports.UserRepository, logger zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{users: users, logger: logger, now: time.Now}
}

// Entitlement computes the caller's premium status. When the stored expiry
// has passed, it is reconciled to null with a conditional write so reads stop
// re-deriving the same expired comparison.
func (s *SubscriptionService) Entitlement(ctx context.Context, principal domain.Principal) (domain.Entitlement, error) {
	user, err := s.users.FindByEmail(ctx, principal.Email)
	if err != nil {
		return domain.Entitlement{}, err
	}

	now := s.now().UTC()
	ent := domain.EvaluateEntitlement(user, now)

	if !ent.IsPremium && user.PremiumExpiry != nil {
		if err := s.users.ClearExpiredPremium(ctx, user.Email, now); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to reconcile expired premium")
		}
	}

	return ent, nil
}

// Activate writes now + plan duration as the user's premium expiry in a
// single atomic update keyed by email. Each activation overwrites any prior
// unexpired duration; payment must have been confirmed by the caller.
func (s *SubscriptionService) Activate(ctx context.Context, principal domain.Principal, plan string) (time.Time, error) {
	duration, ok := planDurations[plan]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown subscription plan %q", domain.ErrValidation, plan)
	}

	if _, err := s.users.FindByEmail(ctx, principal.Email); err != nil {
		return time.Time{}, err
	}

	expiry := s.now().UTC().Add(duration)
	if err := s.users.SetPremiumExpiry(ctx, principal.Email, expiry); err != nil {
		return time.Time{}, fmt.Errorf("activate subscription: %w", err)
	}

	s.logger.Info().Str("email", principal.Email).Str("plan", plan).Time("expires_at", expiry).Msg("subscription activated")
	return expiry, nil
}
