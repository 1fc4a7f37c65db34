// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/byteandblog/internal/platform/database/schema"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the contact.message table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) ListMessages(context context.Context, limit, offset int) ([]*Message, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.ContactMessage.Table)

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_contact_messages")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.ContactMessage.ID, schema.ContactMessage.Name, schema.ContactMessage.Email,
		schema.ContactMessage.Message, schema.ContactMessage.CreatedAt,
		schema.ContactMessage.Table,
		schema.ContactMessage.CreatedAt, schema.ContactMessage.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_contact_messages")
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(&message.ID, &message.Name, &message.Email, &message.Message, &message.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_contact_message")
		}
		messages = append(messages, message)
	}

	return messages, total, dberr.Wrap(rows.Err(), "list_contact_messages")
}

func (repository *PostgresRepository) GetMessage(context context.Context, id int64) (*Message, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ContactMessage.ID, schema.ContactMessage.Name, schema.ContactMessage.Email,
		schema.ContactMessage.Message, schema.ContactMessage.CreatedAt,
		schema.ContactMessage.Table, schema.ContactMessage.ID,
	)

	message := &Message{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&message.ID, &message.Name, &message.Email, &message.Message, &message.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_contact_message")
	}
	return message, nil
}

func (repository *PostgresRepository) CreateMessage(context context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.ContactMessage.Table,
		schema.ContactMessage.Name, schema.ContactMessage.Email,
		schema.ContactMessage.Message, schema.ContactMessage.CreatedAt,
		schema.ContactMessage.ID,
	)

	err := repository.pool.QueryRow(context, query,
		message.Name, message.Email, message.Message, message.CreatedAt,
	).Scan(&message.ID)
	return dberr.Wrap(err, "create_contact_message")
}
