// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog manages blog posts and the comments attached to them.

Posts are listed newest first and paginated; comments are listed per post,
oldest first. Deleting a post removes its comments.
*/
package blog

import (
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
)

// Post is a published article.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  *int64    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a reader's reply to a [Post].
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	AuthorID  *int64    `json:"authorId"`
	PostID    int64     `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Field names for validation
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldPostID  = "postId"
)

const titleMaxLen = 255

var (
	ErrPostNotFound    = apperr.NotFound("Blog post")
	ErrCommentNotFound = apperr.NotFound("Comment")
)
