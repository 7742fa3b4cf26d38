package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on,
// including the unique constraints on users.email and accessKeys.key. Called
// once at startup before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewCourseRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("courses indexes: %w", err)
	}
	if err := NewAccessKeyRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("access keys indexes: %w", err)
	}
	if err := NewContentRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("course content indexes: %w", err)
	}
	return nil
}
