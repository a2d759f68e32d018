package ports

import (
	"context"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

// Decision is the outcome of a gate check on a protected view.
type Decision int

const (
	DecisionRedirectToLogin Decision = iota
	DecisionAllow
)

// SessionGate owns the session lifecycle and answers, for a protected view
// tagged with a required role, whether the caller may proceed. No other
// component touches the underlying store directly.
type SessionGate interface {
	// Establish validates the role claim and persists a fresh session.
	// An unknown role writes nothing and reports ErrInvalidRoleClaim.
	Establish(ctx context.Context, pair domain.TokenPair, roleClaim string) (*domain.Session, error)

	// Current returns the stored session, or nil when there is none.
	// Pure read; store failures read as "not logged in".
	Current(ctx context.Context, sessionID string) *domain.Session

	// Authorize permits rendering iff the stored role equals required.
	// Missing session and wrong role produce the same answer.
	Authorize(ctx context.Context, sessionID string, required domain.Role) Decision

	// Teardown erases the session unconditionally. Idempotent.
	Teardown(ctx context.Context, sessionID string) error
}

// SessionStore persists whole sessions. Writes are coarse (establish and
// teardown only); reads are one snapshot per navigation decision.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	// Load returns nil, nil when no session exists under the id.
	Load(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
