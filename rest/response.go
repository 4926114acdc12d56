package rest

import (
	"bufio"
	"io"
	"net/http"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/scheme"
)

// Response wraps a transport response and supports both one-shot body
// reads and the line-by-line reads the watch stream needs.
type Response struct {
	raw    *http.Response
	reader *bufio.Reader
	cancel func()
	body   []byte
	read   bool
}

func newResponse(raw *http.Response, cancel func()) *Response {
	return &Response{
		raw:    raw,
		reader: bufio.NewReader(raw.Body),
		cancel: cancel,
	}
}

// StatusCode returns the HTTP status of the response.
func (r *Response) StatusCode() int { return r.raw.StatusCode }

// Header returns the response headers.
func (r *Response) Header() http.Header { return r.raw.Header }

// ReadAll consumes and caches the whole body. Subsequent calls return
// the cached bytes.
func (r *Response) ReadAll() ([]byte, error) {
	if r.read {
		return r.body, nil
	}
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, &apierrors.TransportError{StatusCode: r.raw.StatusCode, Err: err}
	}
	r.body = data
	r.read = true
	return data, nil
}

// ReadLine returns the next newline-terminated chunk of the body. An
// empty slice with io.EOF signals the end of the stream.
func (r *Response) ReadLine() ([]byte, error) {
	line, err := r.reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, &apierrors.TransportError{StatusCode: r.raw.StatusCode, Err: err}
	}
	if len(line) == 0 {
		return nil, io.EOF
	}
	return line, nil
}

// Close releases the underlying connection. Safe to call twice.
func (r *Response) Close() error {
	if r.cancel != nil {
		defer r.cancel()
		r.cancel = nil
	}
	return r.raw.Body.Close()
}

// Result pairs the raw transport response with the optionally
// deserialized typed object. Parsed is nil unless the call asked for
// one-shot deserialization.
type Result struct {
	Resp   *Response
	Parsed *scheme.Object
}
