package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"blog-api/internal/domains/post/model"
	"blog-api/internal/domains/post/repository"
)

type postService struct {
	repo repository.RepositoryInterface
}

// NewPostService wires the service to a document store adapter
func NewPostService(repo repository.RepositoryInterface) ServiceInterface {
	return &postService{repo: repo}
}

func (s *postService) List(ctx context.Context) ([]*model.BlogPost, error) {
	return s.repo.FindAll(ctx)
}

func (s *postService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, model.ErrPostNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *postService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.InsertOne(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().Str("post_id", created.ID).Msg("blog post created")
	return created, nil
}

func (s *postService) Update(ctx context.Context, id string, req *model.UpdatePostRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// the body id must name the stored post exactly
	id = strings.TrimSpace(id)
	if id != req.ID {
		return model.ErrIDMismatch
	}

	update := req.ToUpdate()
	if update.IsEmpty() {
		return model.ErrNoFieldsToUpdate
	}

	if err := s.repo.UpdateByID(ctx, id, update); err != nil {
		return err
	}

	log.Info().Str("post_id", id).Msg("blog post updated")
	return nil
}

func (s *postService) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		log.Info().Str("post_id", id).Msg("blog post deleted")
	}
	return deleted, nil
}

func (s *postService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
