package watch_test

import (
	"io"
	"sync"
	"testing"
	"time"

	_ "github.com/otterscale/kubeclient/api" // registers the API descriptors
	"github.com/otterscale/kubeclient/watch"
)

// fakeSource serves scripted lines and records Close.
type fakeSource struct {
	mu     sync.Mutex
	lines  [][]byte
	closed bool
}

func (s *fakeSource) ReadLine() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return nil, io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func collect(t *testing.T, w watch.Interface) []watch.Event {
	t.Helper()
	var events []watch.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-w.ResultChan():
			if !ok {
				return events
			}
			events = append(events, event)
		case <-timeout:
			t.Fatal("watch did not terminate")
		}
	}
}

func TestWatchDecodesEvents(t *testing.T) {
	source := &fakeSource{lines: [][]byte{
		[]byte(`{"type":"ADDED","object":{"apiVersion":"v1","kind":"Namespace","metadata":{"name":"ns-a","resourceVersion":"7"}}}` + "\n"),
		[]byte(`{"type":"MODIFIED","object":{"apiVersion":"v1","kind":"Namespace","metadata":{"name":"ns-a","resourceVersion":"8"}}}` + "\n"),
	}}

	events := collect(t, watch.New(source, "V1Namespace"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != watch.Added || events[1].Type != watch.Modified {
		t.Errorf("types = %v, %v", events[0].Type, events[1].Type)
	}
	for i, event := range events {
		if event.Object == nil {
			t.Fatalf("event %d has no object", i)
		}
		if got := event.Object.Object("metadata").String("name"); got != "ns-a" {
			t.Errorf("event %d name = %q", i, got)
		}
	}
	if !source.isClosed() {
		t.Error("source not closed after EOF")
	}
}

func TestWatchResolvesTypeWithoutHint(t *testing.T) {
	source := &fakeSource{lines: [][]byte{
		[]byte(`{"type":"ADDED","object":{"apiVersion":"v1","kind":"Pod","metadata":{"name":"p"}}}` + "\n"),
	}}

	events := collect(t, watch.New(source, ""))
	if len(events) != 1 || events[0].Object == nil {
		t.Fatalf("events = %+v", events)
	}
	if got := events[0].Object.TypeName(); got != "V1Pod" {
		t.Errorf("TypeName() = %q, want V1Pod", got)
	}
}

func TestWatchNullEvents(t *testing.T) {
	source := &fakeSource{lines: [][]byte{
		[]byte("\xff\xfe not utf-8\n"),
		[]byte("{not json\n"),
		[]byte(`{"object":{"kind":"Pod"}}` + "\n"),
		[]byte(`{"type":"ADDED","object":{"no":"discriminator"}}` + "\n"),
	}}

	events := collect(t, watch.New(source, ""))
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4: the stream must survive bad lines", len(events))
	}
	for i, event := range events {
		if event.Object != nil {
			t.Errorf("event %d decoded an object from a bad line", i)
		}
		if len(event.Raw) == 0 {
			t.Errorf("event %d lost its raw line", i)
		}
	}
	// The first three lines are undecodable; only the last carries a type.
	for i := 0; i < 3; i++ {
		if events[i].Type != "" {
			t.Errorf("event %d type = %q, want empty", i, events[i].Type)
		}
	}
	if events[3].Type != watch.Added {
		t.Errorf("event 3 type = %q, want ADDED", events[3].Type)
	}
}

func TestWatchErrorEvent(t *testing.T) {
	source := &fakeSource{lines: [][]byte{
		[]byte(`{"type":"ERROR","object":{"kind":"Status","code":410,"reason":"Expired"}}` + "\n"),
	}}

	events := collect(t, watch.New(source, "V1Namespace"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != watch.Error {
		t.Errorf("type = %q, want ERROR", events[0].Type)
	}
	if events[0].Object != nil {
		t.Error("ERROR event was parsed into an object")
	}
}

func TestWatchStop(t *testing.T) {
	lines := make([][]byte, 100)
	for i := range lines {
		lines[i] = []byte(`{"type":"ADDED","object":{"apiVersion":"v1","kind":"Namespace","metadata":{"name":"x"}}}` + "\n")
	}
	source := &fakeSource{lines: lines}

	w := watch.New(source, "V1Namespace")
	<-w.ResultChan()
	w.Stop()

	if !source.isClosed() {
		t.Error("Stop() did not close the source")
	}
	// The channel closes without requiring the caller to drain.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-w.ResultChan():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("channel not closed after Stop()")
		}
	}
}
