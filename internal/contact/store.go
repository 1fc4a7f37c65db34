// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import "context"

// Repository is the data access contract for contact messages. Missing rows
// are reported as [dberr.ErrNotFound].
type Repository interface {
	ListMessages(context context.Context, limit, offset int) ([]*Message, int, error)
	GetMessage(context context.Context, id int64) (*Message, error)
	CreateMessage(context context.Context, message *Message) error
}
