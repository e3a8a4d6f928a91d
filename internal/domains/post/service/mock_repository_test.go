package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blog-api/internal/domains/post/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) InsertOne(ctx context.Context, post *model.BlogPost) (*model.BlogPost, error) {
	args := m.Called(ctx, post)
	created, _ := args.Get(0).(*model.BlogPost)
	return created, args.Error(1)
}

func (m *mockRepository) InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error) {
	args := m.Called(ctx, posts)
	created, _ := args.Get(0).([]*model.BlogPost)
	return created, args.Error(1)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*model.BlogPost)
	return posts, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*model.BlogPost)
	return post, args.Error(1)
}

func (m *mockRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) DropAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
