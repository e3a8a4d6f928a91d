package repository

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"blog-api/internal/domains/post/model"
)

// memoryRepository keeps posts in a map. The mutex gives each operation
// the same single-document atomicity the real engines provide.
type memoryRepository struct {
	mu    sync.RWMutex
	posts map[string]model.BlogPost
	now   func() time.Time
}

// NewMemoryRepository creates an empty in-process store
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		posts: make(map[string]model.BlogPost),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryRepository) InsertOne(ctx context.Context, post *model.BlogPost) (*model.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.insertLocked(post)
	return &created, nil
}

func (r *memoryRepository) InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]*model.BlogPost, 0, len(posts))
	for _, p := range posts {
		stored := r.insertLocked(p)
		created = append(created, &stored)
	}
	return created, nil
}

func (r *memoryRepository) insertLocked(post *model.BlogPost) model.BlogPost {
	stored := *post
	stored.ID = ulid.Make().String()
	if stored.PublishDate.IsZero() {
		stored.PublishDate = r.now()
	}
	r.posts[stored.ID] = stored
	return stored
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.BlogPost, 0, len(r.posts))
	for _, p := range r.posts {
		p := p
		posts = append(posts, &p)
	}
	return posts, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return &p, nil
}

func (r *memoryRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return model.ErrPostNotFound
	}
	update.ApplyTo(&p)
	r.posts[id] = p
	return nil
}

func (r *memoryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.posts)), nil
}

func (r *memoryRepository) DropAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = make(map[string]model.BlogPost)
	return nil
}
