package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/cadencehq/cadence/pkg/logger"
	"github.com/cadencehq/cadence/pkg/metrics"
)

// Pool drains the queue with a fixed set of delivery workers.
type Pool struct {
	queue   *Queue
	sink    Sink
	workers int
	logger  logger.Logger
	wg      sync.WaitGroup
}

// NewPool creates a delivery pool over queue and sink.
func NewPool(workers int, queue *Queue, sink Sink, l logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if l == nil {
		l = logger.Get().Named("notify")
	}
	return &Pool{queue: queue, sink: sink, workers: workers, logger: l}
}

// Start launches the workers. They run until the queue closes or ctx is
// canceled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		name := fmt.Sprintf("worker-%d", i)
		go func() {
			defer p.wg.Done()
			p.run(ctx, name)
		}()
	}
}

func (p *Pool) run(ctx context.Context, name string) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-p.queue.Dequeue():
			if !ok {
				return
			}
			metrics.UpdateNotifyQueueDepth(p.queue.Len())
			if err := p.sink.Send(ctx, msg); err != nil {
				metrics.RecordNotifyFailed()
				p.logger.Warn(ctx, "notification delivery failed",
					logger.String("worker", name),
					logger.String("to", msg.To),
					logger.Error(err),
				)
				continue
			}
			metrics.RecordNotifySent()
		}
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (p *Pool) Stop() {
	_ = p.queue.Close()
	p.wg.Wait()
}
