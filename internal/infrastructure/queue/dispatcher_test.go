package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

type captureRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	expect int
}

func newCaptureRepo(expect int) *captureRepo {
	return &captureRepo{done: make(chan struct{}), expect: expect}
}

func (r *captureRepo) Insert(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) == r.expect {
		close(r.done)
	}
	return nil
}

func (r *captureRepo) Recent(context.Context, int64) ([]domain.AuditEvent, error) {
	return nil, nil
}

func (r *captureRepo) wait(t *testing.T) []domain.AuditEvent {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for audit events")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	repo := newCaptureRepo(3)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{SessionID: "s1", Action: domain.AuditLogin})
	d.Record(domain.AuditEvent{SessionID: "s2", Action: domain.AuditDenied})
	d.Record(domain.AuditEvent{SessionID: "s1", Action: domain.AuditLogout})

	events := repo.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_SameSessionStaysOrdered(t *testing.T) {
	const n = 20
	repo := newCaptureRepo(n)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		action := domain.AuditLogin
		if i%2 == 1 {
			action = domain.AuditLogout
		}
		d.Record(domain.AuditEvent{SessionID: "same", Action: action, At: time.Unix(int64(i), 0)})
	}

	events := repo.wait(t)
	for i, event := range events {
		if event.At.Unix() != int64(i) {
			t.Fatalf("event %d out of order: %v", i, event.At)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newCaptureRepo(1), zerolog.Nop())

	first := d.shardIndex("session-abc")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("session-abc"); got != first {
			t.Fatalf("shard index changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
