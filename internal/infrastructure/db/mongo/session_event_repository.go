package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

const sessionEventCollection = "session_events"

// SessionEventRepository implements ports.SessionEventRepository using MongoDB.
type SessionEventRepository struct {
	db *mongo.Database
}

func NewSessionEventRepository(db *mongo.Database) ports.SessionEventRepository {
	return &SessionEventRepository{db: db}
}

// InsertEvent persists a session transition to the session_events audit
// collection.
func (r *SessionEventRepository) InsertEvent(ctx context.Context, event *domain.SessionEvent) error {
	doc := bson.M{
		"type":         string(event.Type),
		"username":     event.Username,
		"at":           event.At.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Role != "" {
		doc["role"] = event.Role
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}
	if event.Scope != "" {
		doc["scope"] = event.Scope
	}

	if _, err := r.db.Collection(sessionEventCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session event: %w", err)
	}
	return nil
}
