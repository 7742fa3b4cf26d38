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

const accessKeysCollection = "accessKeys"

type AccessKeyRepository struct {
	coll *mongo.Collection
}

func NewAccessKeyRepository(db *mongo.Database) *AccessKeyRepository {
	return &AccessKeyRepository{coll: db.Collection(accessKeysCollection)}
}

type mongoAccessKey struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Key         string             `bson:"key"`
	CourseID    string             `bson:"course_id"`
	ExpiryDate  *time.Time         `bson:"expiry_date"`
	MaxUses     *int               `bson:"max_uses"`
	CurrentUses int                `bson:"current_uses"`
	IsActive    bool               `bson:"is_active"`
	LastUsedAt  *time.Time         `bson:"last_used_at,omitempty"`
	LastUsedBy  string             `bson:"last_used_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mk *mongoAccessKey) toDomain() *domain.AccessKey {
	return &domain.AccessKey{
		ID:          mk.ID.Hex(),
		Key:         mk.Key,
		CourseID:    mk.CourseID,
		ExpiryDate:  mk.ExpiryDate,
		MaxUses:     mk.MaxUses,
		CurrentUses: mk.CurrentUses,
		IsActive:    mk.IsActive,
		LastUsedAt:  mk.LastUsedAt,
		LastUsedBy:  mk.LastUsedBy,
		CreatedAt:   mk.CreatedAt.UTC(),
		UpdatedAt:   mk.UpdatedAt.UTC(),
	}
}

func (r *AccessKeyRepository) Create(ctx context.Context, k *domain.AccessKey) (*domain.AccessKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccessKey{
		Key:         k.Key,
		CourseID:    k.CourseID,
		ExpiryDate:  k.ExpiryDate,
		MaxUses:     k.MaxUses,
		CurrentUses: k.CurrentUses,
		IsActive:    k.IsActive,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrKeyExists
		}
		return nil, fmt.Errorf("insert access key: %w", err)
	}

	created := *k
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccessKeyRepository) FindByID(ctx context.Context, id string) (*domain.AccessKey, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrKeyNotFound
	}

	var mk mongoAccessKey
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mk); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find access key: %w", err)
	}
	return mk.toDomain(), nil
}

// FindByKeyAndCourse matches on both fields: a correct key string bound to a
// different course must not be returned.
func (r *AccessKeyRepository) FindByKeyAndCourse(ctx context.Context, key, courseID string) (*domain.AccessKey, error) {
	var mk mongoAccessKey
	err := r.coll.FindOne(ctx, bson.M{"key": key, "course_id": courseID}).Decode(&mk)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find access key: %w", err)
	}
	return mk.toDomain(), nil
}

func (r *AccessKeyRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"key": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count access keys: %w", err)
	}
	return n > 0, nil
}

func (r *AccessKeyRepository) List(ctx context.Context, courseID string) ([]*domain.AccessKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if courseID != "" {
		filter["course_id"] = courseID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list access keys: %w", err)
	}
	defer cur.Close(ctx)

	var keys []*domain.AccessKey
	for cur.Next(ctx) {
		var mk mongoAccessKey
		if err := cur.Decode(&mk); err != nil {
			return nil, fmt.Errorf("decode access key: %w", err)
		}
		keys = append(keys, mk.toDomain())
	}
	return keys, cur.Err()
}

func (r *AccessKeyRepository) Update(ctx context.Context, id string, upd ports.AccessKeyUpdate) (*domain.AccessKey, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrKeyNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Key != nil {
		set["key"] = *upd.Key
	}
	if upd.CourseID != nil {
		set["course_id"] = *upd.CourseID
	}
	if upd.ExpiryDate != nil {
		set["expiry_date"] = *upd.ExpiryDate
	} else if upd.ClearExpiry {
		set["expiry_date"] = nil
	}
	if upd.MaxUses != nil {
		set["max_uses"] = *upd.MaxUses
	} else if upd.ClearMaxUses {
		set["max_uses"] = nil
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mk mongoAccessKey
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mk)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrKeyExists
		}
		return nil, fmt.Errorf("update access key: %w", err)
	}
	return mk.toDomain(), nil
}

func (r *AccessKeyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrKeyNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete access key: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

// ConsumeUse atomically increments current_uses and stamps the last-use
// fields. The filter re-checks the usage cap server-side ($expr compares the
// document's own fields), so two concurrent redemptions of a key with one use
// left cannot both succeed.
func (r *AccessKeyRepository) ConsumeUse(ctx context.Context, id, usedBy string, now time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrKeyNotFound
	}

	filter := bson.M{
		"_id": oid,
		"$or": bson.A{
			bson.M{"max_uses": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$current_uses", "$max_uses"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"current_uses": 1},
		"$set": bson.M{
			"last_used_at": now,
			"last_used_by": usedBy,
			"updated_at":   now,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("consume access key use: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrKeyUsageExceeded
	}
	return nil
}

// EnsureIndexes creates the unique key index plus the redemption lookup
// index. Store-level uniqueness closes the race the read-then-write conflict
// check alone would leave open.
func (r *AccessKeyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "key", Value: 1}, {Key: "course_id", Value: 1}}},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
