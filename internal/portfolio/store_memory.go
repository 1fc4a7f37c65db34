// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// MemoryRepository is an in-process [Repository] ordered like the
// PostgreSQL listing.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]Item)}
}

func (repository *MemoryRepository) ListItems(_ context.Context) ([]*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	items := make([]*Item, 0, len(repository.items))
	for _, item := range repository.items {
		clone := item
		items = append(items, &clone)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (repository *MemoryRepository) GetItem(_ context.Context, id int64) (*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	item, found := repository.items[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return &item, nil
}

func (repository *MemoryRepository) CreateItem(_ context.Context, item *Item) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	item.ID = repository.nextID
	repository.items[item.ID] = *item
	return nil
}

func (repository *MemoryRepository) DeleteItem(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.items[id]; !found {
		return dberr.ErrNotFound
	}
	delete(repository.items, id)
	return nil
}
