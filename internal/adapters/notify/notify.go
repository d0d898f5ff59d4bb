// Package notify delivers reminder emails through a pluggable sink,
// decoupled from request handling by a bounded queue and a worker pool.
// Delivery is best-effort: backpressure drops with a warning.
package notify

import (
	"context"
	"errors"
)

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sink delivers a message to its recipient.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Sentinel kinds for notification errors.
var (
	ErrQueueClosed = errors.New("notification queue is closed")
	ErrSendFailed  = errors.New("notification send failed")
)
