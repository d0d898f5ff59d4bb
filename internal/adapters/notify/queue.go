package notify

import (
	"context"
	"sync"

	"github.com/cadencehq/cadence/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Queue provides non-blocking enqueue and channel-based dequeue semantics
// for outbound notifications.
type Queue struct {
	messages chan Message
	mu       sync.RWMutex
	closed   bool
}

// QueueOption applies a configuration option to the Queue.
type QueueOption func(*queueConfig)

type queueConfig struct {
	capacity int
}

// WithCapacity bounds the queue.
func WithCapacity(n int) QueueOption {
	return func(c *queueConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// NewQueue creates a bounded in-memory notification queue.
func NewQueue(opts ...QueueOption) *Queue {
	cfg := queueConfig{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Queue{messages: make(chan Message, cfg.capacity)}
}

// Enqueue adds a message. Returns false when the queue is full or closed;
// the message is dropped in both cases.
func (q *Queue) Enqueue(_ context.Context, msg Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.messages <- msg:
		metrics.UpdateNotifyQueueDepth(len(q.messages))
		return true
	default:
		metrics.RecordNotifyDropped()
		return false
	}
}

// Dequeue returns the receive channel. It is closed when the queue closes.
func (q *Queue) Dequeue() <-chan Message {
	return q.messages
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	return len(q.messages)
}

// Close shuts the queue; pending messages may still be drained.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.closed = true
	close(q.messages)
	return nil
}
