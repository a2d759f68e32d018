package ports

import (
	"context"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

// RosterRow is one list entry shaped for a dashboard table: the raw record
// plus human-readable labels for its reference fields.
type RosterRow struct {
	Record map[string]any    `json:"record"`
	Labels map[string]string `json:"labels,omitempty"`
}

// RosterService assembles the CRUD surface every dashboard shares: fetch,
// normalize, resolve reference labels, and pass mutations through.
type RosterService interface {
	List(ctx context.Context, accessToken string, resource domain.Resource) ([]RosterRow, error)
	Create(ctx context.Context, accessToken string, resource domain.Resource, payload map[string]any) ([]byte, error)
	Update(ctx context.Context, accessToken string, resource domain.Resource, id int64, payload map[string]any) ([]byte, error)
	Delete(ctx context.Context, accessToken string, resource domain.Resource, id int64) error
}
