// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/byteandblog/internal/blog"
	"github.com/taibuivan/byteandblog/internal/platform/apperr"
)

type stepClock struct {
	now time.Time
}

// Now returns the current instant and moves the clock one minute forward.
func (clock *stepClock) Now() time.Time {
	current := clock.now
	clock.now = clock.now.Add(time.Minute)
	return current
}

func newService(t *testing.T) (*blog.Service, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	repository := blog.NewMemoryRepository()
	return blog.NewService(repository, repository, blog.WithClock(clock.Now)), clock
}

func createPost(t *testing.T, service *blog.Service, title string) *blog.Post {
	t.Helper()
	post := &blog.Post{Title: title, Content: "Body of " + title}
	require.NoError(t, service.CreatePost(context.Background(), post))
	return post
}

func TestService_CreatePost(t *testing.T) {
	service, _ := newService(t)

	post := createPost(t, service, "Hello")
	assert.Positive(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	err := service.CreatePost(context.Background(), &blog.Post{Title: "  ", Content: ""})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Len(t, appErr.Details, 2)
}

func TestService_ListPosts_NewestFirst(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	first := createPost(t, service, "first")
	second := createPost(t, service, "second")
	third := createPost(t, service, "third")

	posts, total, err := service.ListPosts(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, posts, 2)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)

	posts, _, err = service.ListPosts(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, first.ID, posts[0].ID)

	posts, total, err = service.ListPosts(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, posts)
}

func TestService_UpdatePost(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	authorID := int64(7)
	original := &blog.Post{Title: "Draft", Content: "v1", AuthorID: &authorID}
	require.NoError(t, service.CreatePost(ctx, original))

	update := &blog.Post{Title: "Final", Content: "v2"}
	require.NoError(t, service.UpdatePost(ctx, original.ID, update))

	stored, err := service.GetPost(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Equal(t, "v2", stored.Content)
	assert.Equal(t, original.CreatedAt, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
	require.NotNil(t, stored.AuthorID)
	assert.Equal(t, authorID, *stored.AuthorID)

	err = service.UpdatePost(ctx, 999, &blog.Post{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestService_DeletePost_CascadesComments(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	post := createPost(t, service, "doomed")
	other := createPost(t, service, "survivor")

	require.NoError(t, service.CreateComment(ctx, &blog.Comment{PostID: post.ID, Content: "one"}))
	require.NoError(t, service.CreateComment(ctx, &blog.Comment{PostID: other.ID, Content: "two"}))

	require.NoError(t, service.DeletePost(ctx, post.ID))

	_, err := service.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	comments, err := service.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	comments, err = service.ListComments(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	assert.ErrorIs(t, service.DeletePost(ctx, post.ID), blog.ErrPostNotFound)
}

func TestService_Comments(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()
	post := createPost(t, service, "discussed")

	for _, content := range []string{"first!", "second", "third"} {
		require.NoError(t, service.CreateComment(ctx, &blog.Comment{PostID: post.ID, Content: content}))
	}

	comments, err := service.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first!", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)

	err = service.CreateComment(ctx, &blog.Comment{PostID: 404, Content: "orphan"})
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	err = service.CreateComment(ctx, &blog.Comment{PostID: post.ID, Content: " "})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	require.NoError(t, service.DeleteComment(ctx, comments[0].ID))
	assert.ErrorIs(t, service.DeleteComment(ctx, comments[0].ID), blog.ErrCommentNotFound)
}
