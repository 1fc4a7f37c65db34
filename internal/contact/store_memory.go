// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// MemoryRepository is an in-process [Repository]. Messages list newest first.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	messages []Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) ListMessages(_ context.Context, limit, offset int) ([]*Message, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	all := make([]*Message, 0, len(repository.messages))
	for i := range repository.messages {
		clone := repository.messages[i]
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	if offset < 0 || offset >= total {
		return []*Message{}, total, nil
	}
	return all[offset:min(offset+limit, total)], total, nil
}

func (repository *MemoryRepository) GetMessage(_ context.Context, id int64) (*Message, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, message := range repository.messages {
		if message.ID == id {
			return &message, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *MemoryRepository) CreateMessage(_ context.Context, message *Message) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	message.ID = repository.nextID
	repository.messages = append(repository.messages, *message)
	return nil
}
