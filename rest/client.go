package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/config"
	"github.com/otterscale/kubeclient/serializer"
)

// connLimit bounds concurrent connections per host, matching the
// transport pool the server side expects from a single client.
const connLimit = 4

// Client is the transport adapter: it executes request specs over
// HTTP, opens websocket sessions, and owns the pooled connections.
// It is safe for concurrent use.
type Client struct {
	cfg     *config.Configuration
	http    *http.Client
	dialer  *websocket.Dialer
	metrics *requestMetrics

	closeOnce sync.Once
}

// NewClient builds a transport for the given Configuration: a pooled
// HTTP client with the Configuration's TLS trust material and a
// websocket dialer sharing the same trust.
func NewClient(cfg *config.Configuration) (*Client, error) {
	tlsConfig, err := newTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxConnsPerHost:     connLimit,
		MaxIdleConnsPerHost: connLimit,
		IdleConnTimeout:     90 * time.Second,
	}

	metrics, err := newRequestMetrics()
	if err != nil {
		return nil, fmt.Errorf("init transport metrics: %w", err)
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Transport: transport},
		dialer: &websocket.Dialer{
			TLSClientConfig:  tlsConfig,
			HandshakeTimeout: 45 * time.Second,
		},
		metrics: metrics,
	}, nil
}

// Config returns the Configuration this client was built with.
func (c *Client) Config() *config.Configuration { return c.cfg }

// Do executes a finished request spec and returns a streamable
// response. Transport failures surface as TransportError; status
// handling is the caller's job (Invoke does it for typed calls).
func (c *Client) Do(ctx context.Context, spec *RequestSpec) (*Response, error) {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)

	var body *bytes.Reader
	if spec.Body != nil {
		body = bytes.NewReader(spec.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(reqCtx, spec.Method, spec.URL, body)
	if err != nil {
		cancel()
		return nil, &apierrors.TransportError{Err: err}
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	// Basic auth is session-level: it applies to every request unless a
	// bearer token already claimed the header.
	if c.cfg.Username != "" && req.Header.Get("Authorization") == "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		c.metrics.record(ctx, spec.Method, 0, start)
		return nil, &apierrors.TransportError{Err: err}
	}
	c.metrics.record(ctx, spec.Method, resp.StatusCode, start)

	// The cancel travels with the response so the deadline stays armed
	// while the body streams.
	return newResponse(resp, cancel), nil
}

// Invoke runs a typed call end to end: refreshes the bearer token if
// its provider reports expiry, builds the spec, executes it, maps
// non-2xx responses to APIError, and deserializes the body when the
// call asked for it.
func (c *Client) Invoke(ctx context.Context, call Call) (*Result, error) {
	if err := c.cfg.EnsureFreshToken(ctx); err != nil {
		return nil, err
	}

	spec, err := BuildRequest(c.cfg, call)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, spec)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		defer resp.Close()
		return nil, newAPIError(resp)
	}

	if !call.Preload || call.ResponseType == "" {
		return &Result{Resp: resp}, nil
	}
	defer resp.Close()

	data, err := resp.ReadAll()
	if err != nil {
		return nil, err
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &apierrors.SerializationError{Reason: "response body is not valid JSON", Err: err}
	}
	obj, err := serializer.UnmarshalObject(tree, call.ResponseType)
	if err != nil {
		return nil, err
	}
	return &Result{Resp: resp, Parsed: obj}, nil
}

// Close releases idle pooled connections. Safe to call repeatedly and
// on all exit paths.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if t, ok := c.http.Transport.(*http.Transport); ok {
			t.CloseIdleConnections()
		}
	})
	return nil
}

// OpenWebSocket dials a websocket session with the client's TLS trust.
// The requested subprotocols are taken from the Sec-Websocket-Protocol
// header when present.
func (c *Client) OpenWebSocket(ctx context.Context, url string, headers map[string]string) (*websocket.Conn, error) {
	h := make(http.Header, len(headers))
	dialer := *c.dialer
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == "Sec-Websocket-Protocol" {
			dialer.Subprotocols = []string{v}
			continue
		}
		h.Set(k, v)
	}

	conn, resp, err := dialer.DialContext(ctx, url, h) //nolint:bodyclose // gorilla hands over the connection
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, &apierrors.TransportError{StatusCode: status, Err: err}
	}
	return conn, nil
}

// newAPIError reads the error body and lifts the server's Status
// fields when the body carries one.
func newAPIError(resp *Response) error {
	body, err := resp.ReadAll()
	if err != nil {
		slog.Debug("failed to read error response body", "error", err)
	}

	apiErr := &apierrors.APIError{StatusCode: resp.StatusCode(), Body: body}

	var status struct {
		Kind    string `json:"kind"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &status); err == nil && status.Kind == "Status" {
		apiErr.Reason = status.Reason
		apiErr.Message = status.Message
	}
	return apiErr
}

// newTLSConfig assembles the trust context: the Configuration's CA
// bundle (bytes win over path), an optional client certificate pair,
// and the VerifyTLS switch.
func newTLSConfig(cfg *config.Configuration) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // explicit user opt-out
	}

	caData := cfg.CAData
	if caData == nil && cfg.SSLCACert != "" {
		data, err := os.ReadFile(cfg.SSLCACert)
		if err != nil {
			return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("CA bundle %q is not readable", cfg.SSLCACert), Err: err}
		}
		caData = data
	}
	if caData != nil {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caData) {
			return nil, &apierrors.ConfigError{Reason: "CA bundle contains no usable certificates"}
		}
		tlsConfig.RootCAs = pool
	}

	switch {
	case cfg.CertData != nil && cfg.KeyData != nil:
		cert, err := tls.X509KeyPair(cfg.CertData, cfg.KeyData)
		if err != nil {
			return nil, &apierrors.ConfigError{Reason: "client certificate pair is invalid", Err: err}
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	case cfg.CertFile != "" && cfg.KeyFile != "":
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, &apierrors.ConfigError{Reason: "client certificate pair is not loadable", Err: err}
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
