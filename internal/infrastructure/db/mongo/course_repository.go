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

const coursesCollection = "courses"

type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type mongoCourse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Instructor  string             `bson:"instructor"`
	Duration    string             `bson:"duration"`
	Level       string             `bson:"level"`
	Price       float64            `bson:"price"`
	Rating      float64            `bson:"rating"`
	Students    int                `bson:"students"`
	Image       string             `bson:"image,omitempty"`
	Skills      []string           `bson:"skills,omitempty"`
	Curriculum  []string           `bson:"curriculum,omitempty"`
	IsActive    bool               `bson:"is_active"`
	CreatedBy   string             `bson:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mc *mongoCourse) toDomain() *domain.Course {
	return &domain.Course{
		ID:          mc.ID.Hex(),
		Title:       mc.Title,
		Description: mc.Description,
		Instructor:  mc.Instructor,
		Duration:    mc.Duration,
		Level:       mc.Level,
		Price:       mc.Price,
		Rating:      mc.Rating,
		Students:    mc.Students,
		Image:       mc.Image,
		Skills:      mc.Skills,
		Curriculum:  mc.Curriculum,
		IsActive:    mc.IsActive,
		CreatedBy:   mc.CreatedBy,
		CreatedAt:   mc.CreatedAt.UTC(),
		UpdatedAt:   mc.UpdatedAt.UTC(),
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCourse{
		Title:       c.Title,
		Description: c.Description,
		Instructor:  c.Instructor,
		Duration:    c.Duration,
		Level:       c.Level,
		Price:       c.Price,
		Rating:      c.Rating,
		Students:    c.Students,
		Image:       c.Image,
		Skills:      c.Skills,
		Curriculum:  c.Curriculum,
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) List(ctx context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.Instructor != "" {
		query["instructor"] = filter.Instructor
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	return decodeCourses(ctx, cur)
}

func (r *CourseRepository) Update(ctx context.Context, id string, upd ports.CourseUpdate) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Instructor != nil {
		set["instructor"] = *upd.Instructor
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Level != nil {
		set["level"] = *upd.Level
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.Students != nil {
		set["students"] = *upd.Students
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Skills != nil {
		set["skills"] = upd.Skills
	}
	if upd.Curriculum != nil {
		set["curriculum"] = upd.Curriculum
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// SumStudents totals the denormalized enrollment counters server-side.
func (r *CourseRepository) SumStudents(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$students"}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum students: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode student total: %w", err)
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

func (r *CourseRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Course, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent courses: %w", err)
	}
	defer cur.Close(ctx)

	return decodeCourses(ctx, cur)
}

// EnsureIndexes creates the query indexes used by catalog filters.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "level", Value: 1}}},
		{Keys: bson.D{{Key: "instructor", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeCourses(ctx context.Context, cur *mongo.Cursor) ([]*domain.Course, error) {
	var courses []*domain.Course
	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, mc.toDomain())
	}
	return courses, cur.Err()
}
