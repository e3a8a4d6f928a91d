package repository

import (
	"context"

	"blog-api/internal/domains/post/model"
)

// RepositoryInterface is the document store adapter for blog posts.
// Every backend reports a missing or malformed id as model.ErrPostNotFound
// and wraps engine faults in model.ErrStorage.
type RepositoryInterface interface {
	// InsertOne stores a new post. The store assigns ID and, when zero, PublishDate.
	InsertOne(ctx context.Context, post *model.BlogPost) (*model.BlogPost, error)

	// InsertMany stores a batch and returns the stored posts in input order.
	// Used for seeding only.
	InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error)

	// FindAll returns every stored post in no particular order.
	// An empty store yields an empty slice.
	FindAll(ctx context.Context) ([]*model.BlogPost, error)

	FindByID(ctx context.Context, id string) (*model.BlogPost, error)

	// UpdateByID overwrites the named fields. ID and PublishDate are left untouched.
	UpdateByID(ctx context.Context, id string, update model.PostUpdate) error

	// DeleteByID is idempotent: a missing id returns (false, nil).
	DeleteByID(ctx context.Context, id string) (bool, error)

	Count(ctx context.Context) (int64, error)

	// DropAll removes every post. Used by seeding and test teardown.
	DropAll(ctx context.Context) error
}

// Driver names accepted by STORAGE_DRIVER
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)
