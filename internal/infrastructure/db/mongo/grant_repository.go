package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

const grantsCollection = "userCourseAccess"

// GrantRepository persists the append-only redemption audit trail. Grants are
// inserted and read, never updated or deleted.
type GrantRepository struct {
	coll *mongo.Collection
}

func NewGrantRepository(db *mongo.Database) *GrantRepository {
	return &GrantRepository{coll: db.Collection(grantsCollection)}
}

func (r *GrantRepository) Append(ctx context.Context, grant *domain.AccessGrant) error {
	doc := bson.M{
		"user_id":       grant.UserID,
		"course_id":     grant.CourseID,
		"access_key_id": grant.AccessKeyID,
		"access_key":    grant.AccessKey,
		"granted_at":    grant.GrantedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert access grant: %w", err)
	}
	grant.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}
