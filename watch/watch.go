// Package watch consumes the Kubernetes watch wire: a chunked HTTP
// response where every chunk is one newline-terminated JSON document
// of shape {"type": ..., "object": ...}. Events are delivered in
// server order on a demand-driven channel; malformed lines become
// null events instead of terminating the stream, so callers can log
// and continue.
package watch

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/serializer"
)

// EventType is the server-assigned kind of a watch event.
type EventType string

const (
	Added    EventType = "ADDED"
	Modified EventType = "MODIFIED"
	Deleted  EventType = "DELETED"
	Bookmark EventType = "BOOKMARK"
	Error    EventType = "ERROR"
)

// Event is one record from the watch stream. Type is empty when the
// line could not be decoded. Object is nil for undecodable lines, for
// ERROR events, and when no target type was resolvable.
type Event struct {
	Type   EventType
	Raw    []byte
	Object *scheme.Object
}

// Interface is a running watch: a channel of events and a cooperative
// stop. The channel closes when the stream ends or Stop is called.
type Interface interface {
	ResultChan() <-chan Event
	Stop()
}

// lineSource is the slice of the transport response the watcher
// needs. *rest.Response satisfies it.
type lineSource interface {
	ReadLine() ([]byte, error)
	Close() error
}

// StreamWatcher turns a line source into an event channel. Events are
// produced one per demand: the reader goroutine blocks on the channel
// send, so the stream is consumed no faster than the caller drains it.
type StreamWatcher struct {
	source lineSource
	hint   string

	ch       chan Event
	stopOnce sync.Once
	stopped  chan struct{}
}

// New starts watching the given response body. hint names the
// registered type to decode objects into; when empty the embedded
// apiVersion/kind discriminator resolves the type per event.
func New(source lineSource, hint string) *StreamWatcher {
	w := &StreamWatcher{
		source:  source,
		hint:    hint,
		ch:      make(chan Event),
		stopped: make(chan struct{}),
	}
	go w.receive()
	return w
}

// ResultChan returns the event channel. It is closed when the server
// ends the stream, an empty frame arrives, or Stop is called.
func (w *StreamWatcher) ResultChan() <-chan Event { return w.ch }

// Stop terminates the watch. The source is closed, which also unblocks
// a pending read; pending events are discarded.
func (w *StreamWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopped)
		if err := w.source.Close(); err != nil {
			slog.Debug("failed to close watch source", "error", err)
		}
	})
}

func (w *StreamWatcher) receive() {
	defer close(w.ch)
	defer w.Stop()

	for {
		line, err := w.source.ReadLine()
		if err != nil || len(line) == 0 {
			// EOF: the server-side timeout expired or there is no
			// more data.
			return
		}

		select {
		case <-w.stopped:
			return
		case w.ch <- w.decode(line):
		}
	}
}

// decode unpacks one line into an Event following the null-event
// rules: bad UTF-8, bad JSON, and missing type/object keys never
// fail the stream.
func (w *StreamWatcher) decode(line []byte) Event {
	if !utf8.Valid(line) {
		slog.Debug("watch line is not valid UTF-8", "bytes", len(line))
		return Event{Raw: line}
	}

	var frame map[string]any
	if err := json.Unmarshal(line, &frame); err != nil {
		slog.Debug("watch line is not valid JSON", "error", err)
		return Event{Raw: line}
	}

	name, hasName := frame["type"].(string)
	inner, hasObject := frame["object"]
	if !hasName || !hasObject {
		slog.Debug("watch line has no type/object keys")
		return Event{Raw: line}
	}

	// Error events carry a Status, not a resource; never parse them.
	if strings.EqualFold(name, string(Error)) {
		return Event{Type: EventType(name), Raw: line}
	}

	typeName := w.hint
	if typeName == "" {
		tree, _ := inner.(map[string]any)
		typeName = scheme.TypeNameForTree(tree)
	}
	if typeName == "" {
		return Event{Type: EventType(name), Raw: line}
	}

	obj, err := serializer.UnmarshalObject(inner, typeName)
	if err != nil {
		slog.Debug("failed to decode watch object", "type", typeName, "error", err)
		return Event{Type: EventType(name), Raw: line}
	}
	return Event{Type: EventType(name), Raw: line, Object: obj}
}
