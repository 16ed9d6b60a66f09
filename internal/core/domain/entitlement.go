package domain

import "time"

// Entitlement is the premium-access right of a user at a point in time.
type Entitlement struct {
	IsPremium bool
	ExpiresAt *time.Time
	// RemainingDays and RemainingHours report the time until expiry as whole
	// days plus the remaining whole hours, truncating.
	RemainingDays  int
	RemainingHours int
}

// EvaluateEntitlement computes the entitlement of u at now. Pure given
// (u, now); now must be injected by the caller, never read ambiently.
func EvaluateEntitlement(u *User, now time.Time) Entitlement {
	if u.PremiumExpiry == nil || !u.PremiumExpiry.After(now) {
		return Entitlement{}
	}

	remaining := u.PremiumExpiry.Sub(now)
	return Entitlement{
		IsPremium:      true,
		ExpiresAt:      u.PremiumExpiry,
		RemainingDays:  int(remaining / (24 * time.Hour)),
		RemainingHours: int((remaining % (24 * time.Hour)) / time.Hour),
	}
}
