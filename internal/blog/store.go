// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "context"

// PostRepository is the data access contract for posts. Missing rows are
// reported as [dberr.ErrNotFound].
type PostRepository interface {
	ListPosts(context context.Context, limit, offset int) ([]*Post, int, error)
	GetPost(context context.Context, id int64) (*Post, error)
	CreatePost(context context.Context, post *Post) error
	UpdatePost(context context.Context, post *Post) error

	// DeletePost removes the post together with its comments.
	DeletePost(context context.Context, id int64) error
}

// CommentRepository is the data access contract for comments.
type CommentRepository interface {
	ListComments(context context.Context, postID int64) ([]*Comment, error)

	// CreateComment returns [dberr.ErrNotFound] when the parent post is gone.
	CreateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, id int64) error
}
