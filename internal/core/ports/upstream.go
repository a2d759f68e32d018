package ports

import (
	"context"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

// UpstreamClient calls the school platform's REST API on behalf of the
// signed-in user. All failures, transport or HTTP, wrap domain.ErrUpstream.
type UpstreamClient interface {
	// Login exchanges credentials at the token endpoint. Depending on the
	// platform version the role arrives in the response body, in the token
	// claims, or both; bodyRole is "" when the endpoint omitted it.
	Login(ctx context.Context, email, password string) (pair domain.TokenPair, bodyRole string, err error)

	// ListRaw fetches a collection and returns the body verbatim: either a
	// bare array or a paginated envelope, normalized by the caller.
	ListRaw(ctx context.Context, accessToken string, resource domain.Resource) ([]byte, error)

	Create(ctx context.Context, accessToken string, resource domain.Resource, payload map[string]any) ([]byte, error)
	Update(ctx context.Context, accessToken string, resource domain.Resource, id int64, payload map[string]any) ([]byte, error)
	Delete(ctx context.Context, accessToken string, resource domain.Resource, id int64) error
}

// LookupCache holds normalized lookup sequences per resource for reference
// label resolution. Best effort: implementations never fail the caller, a
// broken cache just means a refetch.
type LookupCache interface {
	Get(ctx context.Context, resource domain.Resource) ([]any, bool)
	Set(ctx context.Context, resource domain.Resource, records []any)
	Invalidate(ctx context.Context, resource domain.Resource)
}
