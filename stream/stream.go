// Package stream implements the pod-exec channel protocol over
// websocket: the request URL is upgraded from http(s) to ws(s), the
// v4.channel.k8s.io subprotocol is negotiated, and every binary frame
// carries a channel index byte followed by the payload.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/rest"
)

// Channel indices of the v4.channel.k8s.io protocol. The first byte
// of every binary frame selects one.
const (
	StdinChannel  byte = 0
	StdoutChannel byte = 1
	StderrChannel byte = 2
	ErrorChannel  byte = 3
	ResizeChannel byte = 4
)

// Protocol is the exec subprotocol negotiated during the upgrade.
const Protocol = "v4.channel.k8s.io"

const protocolHeader = "Sec-Websocket-Protocol"

// Frame is one channel-prefixed message.
type Frame struct {
	Channel byte
	Payload []byte
}

// WebsocketURL rewrites an http(s) URL to its ws(s) twin. The input
// scheme is matched case-insensitively, the output scheme is strictly
// lowercase, and authority, path, and query are preserved. Any other
// scheme fails fast with a ProtocolError.
func WebsocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &apierrors.ProtocolError{Reason: fmt.Sprintf("invalid URL %q", raw)}
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", &apierrors.ProtocolError{Reason: fmt.Sprintf("unknown scheme %q", u.Scheme)}
	}
	return u.String(), nil
}

// Session is an open exec channel. In streaming mode the caller reads
// and writes frames directly; Collect drains the inbound side into a
// single buffer.
type Session struct {
	// ID identifies the session in logs.
	ID string

	conn  *websocket.Conn
	queue *FrameQueue
}

// Option configures a Session before the dial.
type Option func(*Session)

// WithQueue attaches a fan-out queue that receives every raw inbound
// frame during Collect, for concurrent consumption.
func WithQueue(q *FrameQueue) Option {
	return func(s *Session) { s.queue = q }
}

// Connect upgrades a built request spec to a websocket session. The
// spec comes from the regular request builder (method stays a normal
// HTTP verb; only the URL scheme changes) and must already carry its
// flattened query. The exec subprotocol header is added when absent.
func Connect(ctx context.Context, client *rest.Client, spec *rest.RequestSpec, opts ...Option) (*Session, error) {
	wsURL, err := WebsocketURL(spec.URL)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(spec.Headers)+1)
	hasProtocol := false
	for k, v := range spec.Headers {
		if http.CanonicalHeaderKey(k) == protocolHeader {
			hasProtocol = true
		}
		headers[k] = v
	}
	if !hasProtocol {
		headers[protocolHeader] = Protocol
	}

	conn, err := client.OpenWebSocket(ctx, wsURL, headers)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.NewString(), conn: conn}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WriteFrame sends one channel-prefixed binary frame.
func (s *Session) WriteFrame(channel byte, payload []byte) error {
	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, channel)
	frame = append(frame, payload...)
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return &apierrors.TransportError{Err: err}
	}
	return nil
}

// ReadFrame returns the next non-empty inbound frame. Non-binary
// messages violate the protocol and fail the session.
func (s *Session) ReadFrame() (Frame, error) {
	for {
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			return Frame{}, err
		}
		if kind != websocket.BinaryMessage {
			return Frame{}, &apierrors.ProtocolError{
				Reason: fmt.Sprintf("unexpected websocket message type %d", kind),
			}
		}
		// Empty messages carry no channel byte; skip them.
		if len(msg) == 0 {
			continue
		}
		return Frame{Channel: msg[0], Payload: msg[1:]}, nil
	}
}

// Collect consumes inbound frames until the peer closes and returns
// the concatenated stdout and stderr payloads. Frames from other
// channels are not collected but still reach the fan-out queue when
// one is attached. On error the output collected so far is returned
// alongside it.
func (s *Session) Collect(ctx context.Context) (string, error) {
	if s.queue != nil {
		defer s.queue.Close()
	}

	// Closing the connection on context cancellation unblocks the
	// pending read; the caller gets the partial output.
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	var out strings.Builder
	for {
		frame, err := s.ReadFrame()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				return out.String(), nil
			}
			if ctx.Err() != nil {
				return out.String(), ctx.Err()
			}
			var protoErr *apierrors.ProtocolError
			if errors.As(err, &protoErr) {
				return out.String(), err
			}
			return out.String(), &apierrors.TransportError{Err: err}
		}

		if s.queue != nil {
			s.queue.Push(frame)
		}

		if len(frame.Payload) == 0 {
			continue
		}
		if frame.Channel == StdoutChannel || frame.Channel == StderrChannel {
			out.Write(frame.Payload)
		}
	}
}

// Close tears down the session. Aborting a running Collect this way
// returns the partial output to its caller.
func (s *Session) Close() error {
	return s.conn.Close()
}
