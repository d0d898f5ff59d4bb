package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cadencehq/cadence/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	logger.SetLevelString("error")
	m.Run()
}

func TestQueue(t *testing.T) {
	Convey("Given a bounded notification queue", t, func() {
		q := NewQueue(WithCapacity(2))
		ctx := context.Background()

		Convey("Enqueue accepts messages up to capacity", func() {
			So(q.Enqueue(ctx, Message{To: "a@corp.test"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Message{To: "b@corp.test"}), ShouldBeTrue)
			So(q.Len(), ShouldEqual, 2)

			Convey("and drops when full", func() {
				So(q.Enqueue(ctx, Message{To: "c@corp.test"}), ShouldBeFalse)
				So(q.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Enqueue is rejected", func() {
				So(q.Enqueue(ctx, Message{To: "a@corp.test"}), ShouldBeFalse)
			})

			Convey("a second close reports the closed state", func() {
				So(q.Close(), ShouldEqual, ErrQueueClosed)
			})

			Convey("the dequeue channel ends", func() {
				_, ok := <-q.Dequeue()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Pending messages survive a close", func() {
			So(q.Enqueue(ctx, Message{To: "a@corp.test"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			msg, ok := <-q.Dequeue()
			So(ok, ShouldBeTrue)
			So(msg.To, ShouldEqual, "a@corp.test")
		})
	})
}

type failingSink struct {
	calls int
}

func (s *failingSink) Send(context.Context, Message) error {
	s.calls++
	return ErrSendFailed
}

func TestPool(t *testing.T) {
	Convey("Given a pool draining into a console sink", t, func() {
		q := NewQueue(WithCapacity(16))
		sink := NewConsoleSink(nil)
		pool := NewPool(2, q, sink, nil)

		ctx := context.Background()
		pool.Start(ctx)

		Convey("Queued messages are delivered", func() {
			So(q.Enqueue(ctx, Message{To: "a@corp.test", Subject: "hello"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Message{To: "b@corp.test", Subject: "there"}), ShouldBeTrue)

			pool.Stop()

			sent := sink.Sent()
			So(len(sent), ShouldEqual, 2)
		})

		Convey("Stop drains messages enqueued before the close", func() {
			for i := 0; i < 10; i++ {
				So(q.Enqueue(ctx, Message{To: "a@corp.test"}), ShouldBeTrue)
			}
			pool.Stop()
			So(len(sink.Sent()), ShouldEqual, 10)
			So(q.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a pool whose sink always fails", t, func() {
		q := NewQueue(WithCapacity(4))
		sink := &failingSink{}
		pool := NewPool(1, q, sink, nil)

		ctx := context.Background()
		pool.Start(ctx)

		Convey("Delivery failures do not stop the workers", func() {
			So(q.Enqueue(ctx, Message{To: "a@corp.test"}), ShouldBeTrue)
			So(q.Enqueue(ctx, Message{To: "b@corp.test"}), ShouldBeTrue)
			pool.Stop()
			So(sink.calls, ShouldEqual, 2)
		})
	})

	Convey("Given a pool with a canceled context", t, func() {
		q := NewQueue(WithCapacity(4))
		sink := NewConsoleSink(nil)
		pool := NewPool(1, q, sink, nil)

		ctx, cancel := context.WithCancel(context.Background())
		pool.Start(ctx)
		cancel()

		Convey("Workers exit without draining", func() {
			done := make(chan struct{})
			go func() {
				pool.Stop()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("pool did not stop after context cancel")
			}
		})
	})
}

func TestConsoleSink(t *testing.T) {
	Convey("Given a console sink", t, func() {
		sink := NewConsoleSink(nil)

		Convey("Send records the message", func() {
			err := sink.Send(context.Background(), Message{To: "a@corp.test", Subject: "s", Body: "b"})
			So(err, ShouldBeNil)

			sent := sink.Sent()
			So(len(sent), ShouldEqual, 1)
			So(sent[0].Subject, ShouldEqual, "s")
		})
	})
}

func TestSentinels(t *testing.T) {
	Convey("Notification sentinels are distinct", t, func() {
		So(errors.Is(ErrQueueClosed, ErrSendFailed), ShouldBeFalse)
	})
}
