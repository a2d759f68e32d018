package ports

import (
	"context"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

// AuditRepository persists gate events durably.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
	// Recent returns the newest events, newest first.
	Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}

// AuditSink accepts gate events for asynchronous delivery. Record must not
// block the request path beyond transient backpressure.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
