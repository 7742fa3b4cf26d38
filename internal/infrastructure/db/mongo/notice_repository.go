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

const noticesCollection = "notices"

type NoticeRepository struct {
	coll *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{coll: db.Collection(noticesCollection)}
}

type mongoNotice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	Type          string             `bson:"type"`
	Priority      int                `bson:"priority"`
	IsActive      bool               `bson:"is_active"`
	CreatedBy     string             `bson:"created_by,omitempty"`
	CreatedByName string             `bson:"created_by_name,omitempty"`
	UpdatedBy     string             `bson:"updated_by,omitempty"`
	UpdatedByName string             `bson:"updated_by_name,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mn *mongoNotice) toDomain() *domain.Notice {
	return &domain.Notice{
		ID:            mn.ID.Hex(),
		Title:         mn.Title,
		Content:       mn.Content,
		Type:          mn.Type,
		Priority:      mn.Priority,
		IsActive:      mn.IsActive,
		CreatedBy:     mn.CreatedBy,
		CreatedByName: mn.CreatedByName,
		UpdatedBy:     mn.UpdatedBy,
		UpdatedByName: mn.UpdatedByName,
		CreatedAt:     mn.CreatedAt.UTC(),
		UpdatedAt:     mn.UpdatedAt.UTC(),
	}
}

func (r *NoticeRepository) Create(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
	doc := mongoNotice{
		Title:         n.Title,
		Content:       n.Content,
		Type:          n.Type,
		Priority:      n.Priority,
		IsActive:      n.IsActive,
		CreatedBy:     n.CreatedBy,
		CreatedByName: n.CreatedByName,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notice: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NoticeRepository) FindByID(ctx context.Context, id string) (*domain.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoticeNotFound
	}

	var mn mongoNotice
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoticeRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Notice, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer cur.Close(ctx)

	var notices []*domain.Notice
	for cur.Next(ctx) {
		var mn mongoNotice
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		notices = append(notices, mn.toDomain())
	}
	return notices, cur.Err()
}

func (r *NoticeRepository) Update(ctx context.Context, id string, upd ports.NoticeUpdate) (*domain.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoticeNotFound
	}

	set := bson.M{
		"updated_at":      time.Now().UTC(),
		"updated_by":      upd.UpdatedBy,
		"updated_by_name": upd.UpdatedByName,
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mn mongoNotice
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("update notice: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoticeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}
