package ports

import (
	"context"

	"github.com/newsphere/content-service/internal/core/domain"
)

// AccessGate authorizes operations for a verified principal. It must only be
// consulted after identity verification succeeds; the role comes from the
// user record, never from the credential.
type AccessGate interface {
	// RequireAdmin returns domain.ErrForbidden unless the principal's user
	// record exists and carries the admin role.
	RequireAdmin(ctx context.Context, principal domain.Principal) error
	// RequireOwnerOrAdmin allows the resource owner, and otherwise falls
	// back to the admin check.
	RequireOwnerOrAdmin(ctx context.Context, principal domain.Principal, ownerEmail string) error
}
