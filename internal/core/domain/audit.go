package domain

import "time"

// AuditAction classifies a gate-relevant moment worth keeping in the trail.
type AuditAction string

const (
	AuditLogin  AuditAction = "login"
	AuditLogout AuditAction = "logout"
	AuditDenied AuditAction = "denied"
)

// AuditEvent records one session-gate decision for the durable audit trail.
// Denied events capture the path the caller tried to reach; login events
// additionally carry the email used.
type AuditEvent struct {
	SessionID string
	Email     string
	Role      string
	Action    AuditAction
	Path      string
	At        time.Time
}
