// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/byteandblog/internal/platform/database/schema"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the portfolio.item table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectItemColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.PortfolioItem.ID, schema.PortfolioItem.Title, schema.PortfolioItem.Description,
	schema.PortfolioItem.ImageURL, schema.PortfolioItem.ProjectURL, schema.PortfolioItem.CreatedAt,
)

func (repository *PostgresRepository) ListItems(context context.Context) ([]*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectItemColumns, schema.PortfolioItem.Table,
		schema.PortfolioItem.CreatedAt, schema.PortfolioItem.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_portfolio_items")
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.ProjectURL, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_portfolio_item")
		}
		items = append(items, item)
	}

	return items, dberr.Wrap(rows.Err(), "list_portfolio_items")
}

func (repository *PostgresRepository) GetItem(context context.Context, id int64) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectItemColumns, schema.PortfolioItem.Table, schema.PortfolioItem.ID,
	)

	item := &Item{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.ProjectURL, &item.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_portfolio_item")
	}
	return item, nil
}

func (repository *PostgresRepository) CreateItem(context context.Context, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.PortfolioItem.Table,
		schema.PortfolioItem.Title, schema.PortfolioItem.Description, schema.PortfolioItem.ImageURL,
		schema.PortfolioItem.ProjectURL, schema.PortfolioItem.CreatedAt,
		schema.PortfolioItem.ID,
	)

	err := repository.pool.QueryRow(context, query,
		item.Title, item.Description, item.ImageURL, item.ProjectURL, item.CreatedAt,
	).Scan(&item.ID)
	return dberr.Wrap(err, "create_portfolio_item")
}

func (repository *PostgresRepository) DeleteItem(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.PortfolioItem.Table, schema.PortfolioItem.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_portfolio_item")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
