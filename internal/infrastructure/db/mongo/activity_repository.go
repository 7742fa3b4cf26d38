package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

const activitiesCollection = "activityEvents"

// ActivityRepository persists dashboard activity events. The collection is
// append-only; events carry their own bson tags and are stored as-is.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *ActivityRepository) Append(ctx context.Context, event *domain.ActivityEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.ActivityEvent
	for cur.Next(ctx) {
		var ev domain.ActivityEvent
		if err := cur.Decode(&ev); err != nil {
			return nil, fmt.Errorf("decode activity event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, cur.Err()
}
