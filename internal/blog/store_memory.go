// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// MemoryRepository is an in-process [PostRepository] and [CommentRepository]
// with the same ordering and cascade rules as the PostgreSQL schema.
type MemoryRepository struct {
	mu            sync.RWMutex
	nextPostID    int64
	nextCommentID int64
	posts         map[int64]*Post
	comments      map[int64]*Comment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts:    make(map[int64]*Post),
		comments: make(map[int64]*Comment),
	}
}

func (repository *MemoryRepository) ListPosts(_ context.Context, limit, offset int) ([]*Post, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	all := make([]*Post, 0, len(repository.posts))
	for _, post := range repository.posts {
		clone := *post
		all = append(all, &clone)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if offset < 0 || offset >= total {
		return []*Post{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (repository *MemoryRepository) GetPost(_ context.Context, id int64) (*Post, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	post, found := repository.posts[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (repository *MemoryRepository) CreatePost(_ context.Context, post *Post) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextPostID++
	post.ID = repository.nextPostID

	clone := *post
	repository.posts[post.ID] = &clone
	return nil
}

func (repository *MemoryRepository) UpdatePost(_ context.Context, post *Post) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.posts[post.ID]
	if !found {
		return dberr.ErrNotFound
	}

	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = post.UpdatedAt

	post.AuthorID = stored.AuthorID
	post.CreatedAt = stored.CreatedAt
	return nil
}

func (repository *MemoryRepository) DeletePost(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.posts[id]; !found {
		return dberr.ErrNotFound
	}

	delete(repository.posts, id)
	for commentID, comment := range repository.comments {
		if comment.PostID == id {
			delete(repository.comments, commentID)
		}
	}
	return nil
}

func (repository *MemoryRepository) ListComments(_ context.Context, postID int64) ([]*Comment, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	comments := []*Comment{}
	for _, comment := range repository.comments {
		if comment.PostID == postID {
			clone := *comment
			comments = append(comments, &clone)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (repository *MemoryRepository) CreateComment(_ context.Context, comment *Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.posts[comment.PostID]; !found {
		return dberr.ErrNotFound
	}

	repository.nextCommentID++
	comment.ID = repository.nextCommentID

	clone := *comment
	repository.comments[comment.ID] = &clone
	return nil
}

func (repository *MemoryRepository) DeleteComment(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.comments[id]; !found {
		return dberr.ErrNotFound
	}
	delete(repository.comments, id)
	return nil
}
