package stream

import "sync"

// FrameQueue is a bounded, concurrency-safe fan-out queue for raw
// inbound frames. The collecting loop pushes every frame it receives
// so a second consumer can observe the stream concurrently. When the
// queue is full the oldest frame is dropped to make room.
type FrameQueue struct {
	mu     sync.Mutex
	ch     chan Frame
	closed bool
}

// NewFrameQueue returns a FrameQueue holding up to size frames.
func NewFrameQueue(size int) *FrameQueue {
	if size <= 0 {
		size = 16
	}
	return &FrameQueue{ch: make(chan Frame, size)}
}

// Next returns the next frame. It blocks until a frame is available
// or the queue is closed (returns false).
func (q *FrameQueue) Next() (Frame, bool) {
	f, ok := <-q.ch
	return f, ok
}

// Push enqueues a frame. If the queue is full, the oldest frame is
// dropped to make room. A mutex prevents concurrent callers from
// racing on the drain-then-push sequence. Calls after Close are
// silently ignored to prevent a send-on-closed-channel panic.
func (q *FrameQueue) Push(f Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	select {
	case q.ch <- f:
	default:
		// Drop the oldest and push the new frame.
		<-q.ch
		q.ch <- f
	}
}

// Close closes the underlying channel, causing Next to return false.
// It is safe to call Close multiple times.
func (q *FrameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
