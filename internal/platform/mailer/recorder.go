// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer

import (
	"context"
	"sync"
)

// Recorder is an in-memory [Sender] for tests. Setting Err makes every Send fail.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

// Send implements [Sender].
func (recorder *Recorder) Send(_ context.Context, msg Message) error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if recorder.Err != nil {
		return recorder.Err
	}

	recorder.sent = append(recorder.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages in order.
func (recorder *Recorder) Sent() []Message {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	return append([]Message(nil), recorder.sent...)
}

// Last returns the most recent message and whether there was one.
func (recorder *Recorder) Last() (Message, bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if len(recorder.sent) == 0 {
		return Message{}, false
	}
	return recorder.sent[len(recorder.sent)-1], true
}
