package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditRepository persists the session-gate audit trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	SessionID string `bson:"session_id,omitempty"`
	Email     string `bson:"email,omitempty"`
	Role      string `bson:"role,omitempty"`
	Action    string `bson:"action"`
	Path      string `bson:"path,omitempty"`
	At        int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		SessionID: event.SessionID,
		Email:     event.Email,
		Role:      event.Role,
		Action:    string(event.Action),
		Path:      event.Path,
		At:        event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// Recent returns the newest events first, for the owner dashboard's activity
// view.
func (r *MongoAuditRepository) Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuditEvent
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, domain.AuditEvent{
			SessionID: doc.SessionID,
			Email:     doc.Email,
			Role:      doc.Role,
			Action:    domain.AuditAction(doc.Action),
			Path:      doc.Path,
			At:        unixToTime(doc.At),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
