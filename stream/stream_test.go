package stream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/otterscale/kubeclient/config"
	"github.com/otterscale/kubeclient/rest"
	"github.com/otterscale/kubeclient/stream"
)

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost/foo", want: "ws://localhost/foo"},
		{in: "https://localhost/foo?bar=1", want: "wss://localhost/foo?bar=1"},
		{in: "HtTps://localhost", want: "wss://localhost"},
		{in: "HTTP://h:8080/p", want: "ws://h:8080/p"},
		{in: "foo://localhost", wantErr: true},
		{in: "localhost/foo", wantErr: true},
	}
	for _, tt := range tests {
		got, err := stream.WebsocketURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("WebsocketURL(%q) accepted an unknown scheme", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("WebsocketURL(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("WebsocketURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// execServer upgrades the connection and plays the given frames, then
// closes cleanly.
func execServer(t *testing.T, frames [][]byte) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: []string{stream.Protocol}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, opts ...stream.Option) *stream.Session {
	t.Helper()
	cfg := config.New()
	cfg.Host = srv.URL
	client, err := rest.NewClient(cfg)
	if err != nil {
		t.Fatalf("rest.NewClient() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	spec, err := rest.BuildRequest(cfg, rest.Call{Path: "/exec", Method: "GET", Upgrade: true})
	if err != nil {
		t.Fatalf("rest.BuildRequest() error = %v", err)
	}
	session, err := stream.Connect(context.Background(), client, spec, opts...)
	if err != nil {
		t.Fatalf("stream.Connect() error = %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestCollect(t *testing.T) {
	srv := execServer(t, [][]byte{
		[]byte("\x01message1"),
		{},
		[]byte("\x01message2"),
		[]byte("\x02warning"),
		[]byte("\x03exit status"),
	})

	session := dial(t, srv)
	if session.ID == "" {
		t.Error("session has no ID")
	}

	out, err := session.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	// stdout and stderr are collected; the error channel is not.
	if out != "message1message2warning" {
		t.Errorf("Collect() = %q", out)
	}
}

func TestCollectFanOut(t *testing.T) {
	srv := execServer(t, [][]byte{
		[]byte("\x01out"),
		[]byte("\x03exit status"),
	})

	queue := stream.NewFrameQueue(8)
	session := dial(t, srv, stream.WithQueue(queue))

	if _, err := session.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	// Every frame reaches the queue, including non-output channels.
	f, ok := queue.Next()
	if !ok || f.Channel != stream.StdoutChannel || string(f.Payload) != "out" {
		t.Fatalf("Next() = %+v, %v", f, ok)
	}
	f, ok = queue.Next()
	if !ok || f.Channel != stream.ErrorChannel {
		t.Fatalf("Next() = %+v, %v", f, ok)
	}
	if _, ok := queue.Next(); ok {
		t.Error("queue not closed after Collect")
	}
}

func TestCollectRejectsTextFrames(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("\x01nope"))
	}))
	t.Cleanup(srv.Close)

	session := dial(t, srv)
	if _, err := session.Collect(context.Background()); err == nil {
		t.Error("Collect() accepted a text frame")
	}
}

func TestWriteFrame(t *testing.T) {
	received := make(chan []byte, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- msg
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	t.Cleanup(srv.Close)

	session := dial(t, srv)
	if err := session.WriteFrame(stream.StdinChannel, []byte("ls\n")); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	msg := <-received
	if len(msg) == 0 || msg[0] != stream.StdinChannel || string(msg[1:]) != "ls\n" {
		t.Errorf("server received %q", msg)
	}
}
