package action

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Push once the consumer has closed the queue.
var ErrQueueClosed = errors.New("action: queue closed")

// Sender is the producer side of a Queue.
type Sender interface {
	Push(a Action) error
}

// Queue is an unbounded, order-preserving multi-producer single-consumer
// queue. Producers never block; the consumer drains everything queued so far
// in one call.
type Queue struct {
	mu      sync.Mutex
	pending []Action
	closed  bool
	ready   chan struct{}
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends a to the queue.
func (q *Queue) Push(a Action) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, a)

	select {
	case q.ready <- struct{}{}:
	default:
		// a wakeup is already pending and will observe this action
	}
	return nil
}

// Ready is signalled whenever actions were pushed since the last Drain. It
// is closed when the queue is closed.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns every queued action in arrival order.
func (q *Queue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len reports the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close rejects further pushes and wakes any waiter. Queued actions remain
// drainable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ready)
}
