// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
	"github.com/taibuivan/byteandblog/internal/platform/validate"
)

type Service struct {
	posts    PostRepository
	comments CommentRepository
	now      func() time.Time
}

// Option configures a [Service].
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

func NewService(posts PostRepository, comments CommentRepository, opts ...Option) *Service {
	service := &Service{
		posts:    posts,
		comments: comments,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// notFound swaps the storage sentinel for a resource-specific error.
func notFound(err error, resourceErr error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return resourceErr
	}
	return err
}

func validatePost(post *Post) error {
	post.Title = strings.TrimSpace(post.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).
		MaxLen(FieldTitle, post.Title, titleMaxLen).
		Required(FieldContent, strings.TrimSpace(post.Content))

	return validator.Err()
}

// # Posts

func (service *Service) ListPosts(context context.Context, limit, offset int) ([]*Post, int, error) {
	return service.posts.ListPosts(context, limit, offset)
}

func (service *Service) GetPost(context context.Context, id int64) (*Post, error) {
	post, err := service.posts.GetPost(context, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return post, nil
}

/*
CreatePost validates and stores a new post, stamping both timestamps.

Parameters:
  - context: context.Context
  - post: *Post (ID and timestamps are assigned)

Returns:
  - error: Validation or storage errors
*/
func (service *Service) CreatePost(context context.Context, post *Post) error {
	if err := validatePost(post); err != nil {
		return err
	}

	now := service.now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if err := service.posts.CreatePost(context, post); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_post_created",
		slog.Int64("post_id", post.ID),
		slog.String("title", post.Title),
	)
	return nil
}

/*
UpdatePost replaces title and content of an existing post.

Author and creation time are kept; updatedAt moves to now.

Returns:
  - error: ErrPostNotFound, validation or storage errors
*/
func (service *Service) UpdatePost(context context.Context, id int64, post *Post) error {
	if err := validatePost(post); err != nil {
		return err
	}

	post.ID = id
	post.UpdatedAt = service.now().UTC()

	if err := service.posts.UpdatePost(context, post); err != nil {
		return notFound(err, ErrPostNotFound)
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_post_updated", slog.Int64("post_id", id))
	return nil
}

func (service *Service) DeletePost(context context.Context, id int64) error {
	if err := service.posts.DeletePost(context, id); err != nil {
		return notFound(err, ErrPostNotFound)
	}

	ctxutil.GetLogger(context).WarnContext(context, "blog_post_deleted", slog.Int64("post_id", id))
	return nil
}

// # Comments

// ListComments returns the comments of a post, oldest first. An unknown post
// simply has no comments.
func (service *Service) ListComments(context context.Context, postID int64) ([]*Comment, error) {
	return service.comments.ListComments(context, postID)
}

/*
CreateComment attaches a comment to an existing post.

Returns:
  - error: ErrPostNotFound when the post does not exist, validation or storage errors
*/
func (service *Service) CreateComment(context context.Context, comment *Comment) error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, strings.TrimSpace(comment.Content)).
		Positive(FieldPostID, comment.PostID)

	if err := validator.Err(); err != nil {
		return err
	}

	comment.CreatedAt = service.now().UTC()

	if err := service.comments.CreateComment(context, comment); err != nil {
		return notFound(err, ErrPostNotFound)
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
	)
	return nil
}

func (service *Service) DeleteComment(context context.Context, id int64) error {
	if err := service.comments.DeleteComment(context, id); err != nil {
		return notFound(err, ErrCommentNotFound)
	}

	ctxutil.GetLogger(context).WarnContext(context, "blog_comment_deleted", slog.Int64("comment_id", id))
	return nil
}
