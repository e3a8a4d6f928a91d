package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domains/post/model"
)

func strPtr(s string) *string { return &s }

func TestCreate_ValidationHappensBeforeStorage(t *testing.T) {
	repo := new(mockRepository)
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), &model.CreatePostRequest{Title: "t"})
	require.Error(t, err)
	repo.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestCreate_StoresEntity(t *testing.T) {
	repo := new(mockRepository)
	svc := NewPostService(repo)
	ctx := context.Background()

	stored := &model.BlogPost{ID: "1", Title: "t", Content: "c", Author: model.Author{FirstName: "A", LastName: "B"}}
	repo.On("InsertOne", ctx, mock.MatchedBy(func(p *model.BlogPost) bool {
		return p.ID == "" && p.Title == "t" && p.Author.LastName == "B"
	})).Return(stored, nil).Once()

	created, err := svc.Create(ctx, &model.CreatePostRequest{
		Title:   "t",
		Content: "c",
		Author:  model.AuthorRequest{FirstName: "A", LastName: "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, stored, created)
	repo.AssertExpectations(t)
}

func TestCreate_StorageErrorPropagates(t *testing.T) {
	repo := new(mockRepository)
	svc := NewPostService(repo)
	ctx := context.Background()

	repo.On("InsertOne", ctx, mock.Anything).Return(nil, fmt.Errorf("%w: down", model.ErrStorage))

	_, err := svc.Create(ctx, &model.CreatePostRequest{
		Title:   "t",
		Content: "c",
		Author:  model.AuthorRequest{FirstName: "A", LastName: "B"},
	})
	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("id mismatch", func(t *testing.T) {
		repo := new(mockRepository)
		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: "b", Title: strPtr("x")})
		assert.ErrorIs(t, err, model.ErrIDMismatch)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid fields never reach storage", func(t *testing.T) {
		repo := new(mockRepository)
		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: "a", Title: strPtr("   ")})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, model.ToHTTPStatus(err))
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("padded body id is a mismatch", func(t *testing.T) {
		repo := new(mockRepository)
		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: " a ", Title: strPtr("x")})
		assert.ErrorIs(t, err, model.ErrIDMismatch)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("path id is trimmed before storage", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("UpdateByID", ctx, "a", mock.Anything).Return(nil).Once()

		err := NewPostService(repo).Update(ctx, " a ", &model.UpdatePostRequest{ID: "a", Title: strPtr("x")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("nothing to update", func(t *testing.T) {
		repo := new(mockRepository)
		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: "a"})
		assert.ErrorIs(t, err, model.ErrNoFieldsToUpdate)
	})

	t.Run("passes only named fields", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("UpdateByID", ctx, "a", mock.MatchedBy(func(u model.PostUpdate) bool {
			return u.Title != nil && *u.Title == "x" && u.Content == nil && u.Author == nil
		})).Return(nil).Once()

		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: "a", Title: strPtr("x")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("UpdateByID", ctx, "a", mock.Anything).Return(model.ErrPostNotFound)

		err := NewPostService(repo).Update(ctx, "a", &model.UpdatePostRequest{ID: "a", Title: strPtr("x")})
		assert.ErrorIs(t, err, model.ErrPostNotFound)
	})
}

func TestGet_BlankIDIsNotFound(t *testing.T) {
	repo := new(mockRepository)
	_, err := NewPostService(repo).Get(context.Background(), "  ")
	assert.True(t, errors.Is(err, model.ErrPostNotFound))
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("DeleteByID", ctx, "a").Return(true, nil).Once()
	repo.On("DeleteByID", ctx, "a").Return(false, nil).Once()

	svc := NewPostService(repo)
	deleted, err := svc.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)
	repo.AssertExpectations(t)
}
