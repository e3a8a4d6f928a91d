package service

import (
	"context"

	"blog-api/internal/domains/post/model"
)

// ServiceInterface is what the HTTP handler depends on.
// Each method performs exactly one storage call.
type ServiceInterface interface {
	List(ctx context.Context) ([]*model.BlogPost, error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.BlogPost, error)

	// Update fails with model.ErrIDMismatch when id differs from req.ID
	// and model.ErrNoFieldsToUpdate when the request names nothing to change.
	Update(ctx context.Context, id string, req *model.UpdatePostRequest) error

	// Delete reports whether a post was removed; a missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	Count(ctx context.Context) (int64, error)
}
