package notify

import (
	"context"
	"sync"

	"github.com/cadencehq/cadence/pkg/logger"
)

// ConsoleSink logs messages instead of delivering them. Used in local
// development and as a test double; it records what it sent.
type ConsoleSink struct {
	mu     sync.Mutex
	sent   []Message
	logger logger.Logger
}

// NewConsoleSink creates a console sink.
func NewConsoleSink(l logger.Logger) *ConsoleSink {
	if l == nil {
		l = logger.Get().Named("notify")
	}
	return &ConsoleSink{logger: l}
}

// Send logs the message and records it.
func (s *ConsoleSink) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "notification",
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject),
		logger.String("body", msg.Body),
	)
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of the recorded messages.
func (s *ConsoleSink) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
