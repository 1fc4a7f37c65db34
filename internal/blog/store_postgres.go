// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/byteandblog/internal/platform/database/schema"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// PostgresRepository implements [PostRepository] and [CommentRepository]
// over the blog schema. Comment removal on post deletion is done by the
// ON DELETE CASCADE foreign key.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Posts

func (repository *PostgresRepository) ListPosts(context context.Context, limit, offset int) ([]*Post, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.BlogPost.Table)

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.BlogPost.ID, schema.BlogPost.Title, schema.BlogPost.Content,
		schema.BlogPost.AuthorID, schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
		schema.BlogPost.Table,
		schema.BlogPost.CreatedAt, schema.BlogPost.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, total, dberr.Wrap(rows.Err(), "list_posts")
}

func (repository *PostgresRepository) GetPost(context context.Context, id int64) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.BlogPost.ID, schema.BlogPost.Title, schema.BlogPost.Content,
		schema.BlogPost.AuthorID, schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
		schema.BlogPost.Table, schema.BlogPost.ID,
	)

	post := &Post{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}
	return post, nil
}

func (repository *PostgresRepository) CreatePost(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.BlogPost.Table, schema.BlogPost.Title, schema.BlogPost.Content,
		schema.BlogPost.AuthorID, schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
		schema.BlogPost.ID,
	)

	err := repository.pool.QueryRow(context, query,
		post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	return dberr.Wrap(err, "create_post")
}

// UpdatePost rewrites title, content and updatedAt, then reloads the
// untouched columns into post.
func (repository *PostgresRepository) UpdatePost(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.BlogPost.Table,
		schema.BlogPost.Title, schema.BlogPost.Content, schema.BlogPost.UpdatedAt,
		schema.BlogPost.ID,
		schema.BlogPost.AuthorID, schema.BlogPost.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		post.ID, post.Title, post.Content, post.UpdatedAt,
	).Scan(&post.AuthorID, &post.CreatedAt)
	return dberr.Wrap(err, "update_post")
}

func (repository *PostgresRepository) DeletePost(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BlogPost.Table, schema.BlogPost.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Comments

func (repository *PostgresRepository) ListComments(context context.Context, postID int64) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`,
		schema.BlogComment.ID, schema.BlogComment.Content, schema.BlogComment.AuthorID,
		schema.BlogComment.PostID, schema.BlogComment.CreatedAt,
		schema.BlogComment.Table, schema.BlogComment.PostID,
		schema.BlogComment.CreatedAt, schema.BlogComment.ID,
	)

	rows, err := repository.pool.Query(context, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, dberr.Wrap(rows.Err(), "list_comments")
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.BlogComment.Table, schema.BlogComment.PostID, schema.BlogComment.AuthorID,
		schema.BlogComment.Content, schema.BlogComment.CreatedAt,
		schema.BlogComment.ID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt,
	).Scan(&comment.ID)

	// A missing parent post surfaces as a foreign key violation.
	if dberr.IsForeignKeyViolation(err) {
		return dberr.ErrNotFound
	}
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) DeleteComment(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BlogComment.Table, schema.BlogComment.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
