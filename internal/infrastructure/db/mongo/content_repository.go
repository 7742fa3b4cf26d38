package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

const contentCollection = "courseContent"

type ContentRepository struct {
	coll *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(contentCollection)}
}

type mongoContent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CourseID  string             `bson:"course_id"`
	Title     string             `bson:"title"`
	Sections  []domain.Section   `bson:"sections"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mc *mongoContent) toDomain() *domain.CourseContent {
	return &domain.CourseContent{
		ID:        mc.ID.Hex(),
		CourseID:  mc.CourseID,
		Title:     mc.Title,
		Sections:  mc.Sections,
		CreatedAt: mc.CreatedAt.UTC(),
		UpdatedAt: mc.UpdatedAt.UTC(),
	}
}

func (r *ContentRepository) Create(ctx context.Context, c *domain.CourseContent) (*domain.CourseContent, error) {
	doc := mongoContent{
		CourseID:  c.CourseID,
		Title:     c.Title,
		Sections:  c.Sections,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course content: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.CourseContent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	var mc mongoContent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find course content: %w", err)
	}
	return mc.toDomain(), nil
}

// FindByCourseID returns the curriculum bound to a course. The relationship
// is one-to-one; the first match wins if seed data ever duplicates it.
func (r *ContentRepository) FindByCourseID(ctx context.Context, courseID string) (*domain.CourseContent, error) {
	var mc mongoContent
	err := r.coll.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find course content by course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ContentRepository) Update(ctx context.Context, id string, upd ports.ContentUpdate) (*domain.CourseContent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Sections != nil {
		set["sections"] = upd.Sections
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoContent
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("update course content: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course content: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// EnsureIndexes creates the course lookup index.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}},
	})
	return err
}
