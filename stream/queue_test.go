package stream

import "testing"

func TestFrameQueueOrder(t *testing.T) {
	q := NewFrameQueue(4)
	q.Push(Frame{Channel: StdoutChannel, Payload: []byte("a")})
	q.Push(Frame{Channel: StderrChannel, Payload: []byte("b")})
	q.Close()

	f, ok := q.Next()
	if !ok || f.Channel != StdoutChannel || string(f.Payload) != "a" {
		t.Fatalf("Next() = %+v, %v", f, ok)
	}
	f, ok = q.Next()
	if !ok || f.Channel != StderrChannel || string(f.Payload) != "b" {
		t.Fatalf("Next() = %+v, %v", f, ok)
	}
	if _, ok := q.Next(); ok {
		t.Error("Next() after close returned a frame")
	}
}

func TestFrameQueueDropsOldest(t *testing.T) {
	q := NewFrameQueue(2)
	q.Push(Frame{Payload: []byte("1")})
	q.Push(Frame{Payload: []byte("2")})
	q.Push(Frame{Payload: []byte("3")})
	q.Close()

	f, _ := q.Next()
	if string(f.Payload) != "2" {
		t.Errorf("first frame = %q, want 2 (oldest dropped)", f.Payload)
	}
	f, _ = q.Next()
	if string(f.Payload) != "3" {
		t.Errorf("second frame = %q, want 3", f.Payload)
	}
}

func TestFrameQueueCloseIdempotent(t *testing.T) {
	q := NewFrameQueue(1)
	q.Close()
	q.Close()
	q.Push(Frame{Payload: []byte("late")})

	if _, ok := q.Next(); ok {
		t.Error("Push after Close enqueued a frame")
	}
}
