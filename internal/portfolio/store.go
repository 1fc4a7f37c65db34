// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import "context"

// Repository is the data access contract for portfolio items. Missing rows
// are reported as [dberr.ErrNotFound].
type Repository interface {
	ListItems(context context.Context) ([]*Item, error)
	GetItem(context context.Context, id int64) (*Item, error)
	CreateItem(context context.Context, item *Item) error
	DeleteItem(context context.Context, id int64) error
}
