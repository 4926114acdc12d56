// Package config carries the client Configuration: host, TLS trust
// material, auth settings, and tuning knobs handed to the request
// builder and the transport. Configurations are produced by the
// in-cluster loader, the kubeconfig loader, or built by hand, and are
// read-only after hand-off except for the bearer-token refresh point.
package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/otterscale/kubeclient/apierrors"
)

// AuthLocation says where an auth setting is injected.
type AuthLocation string

const (
	// InHeader injects the setting as a request header.
	InHeader AuthLocation = "header"
	// InQuery injects the setting as a query parameter.
	InQuery AuthLocation = "query"
)

// AuthSetting is one named credential: a key/value pair and the
// location it is injected at.
type AuthSetting struct {
	Location AuthLocation
	Key      string
	Value    string
}

// TokenProvider supplies bearer tokens that may expire. Implementations
// return a currently valid token, refreshing it if needed.
type TokenProvider interface {
	// Token returns a valid bearer token, without any scheme prefix.
	Token(ctx context.Context) (string, error)
	// Expiry returns the expiry of the last returned token; the zero
	// time means the token does not expire.
	Expiry() time.Time
}

// Configuration holds everything needed to reach one cluster.
type Configuration struct {
	// Host is scheme://authority plus an optional base path, without
	// a trailing slash.
	Host string

	// SSLCACert is the path to a PEM bundle for the server CA.
	// CAData takes precedence when both are set.
	SSLCACert string
	CAData    []byte

	// Client certificate pair, as paths or raw PEM.
	CertFile string
	KeyFile  string
	CertData []byte
	KeyData  []byte

	// VerifyTLS disables server certificate verification when false.
	VerifyTLS bool

	// Username and Password enable HTTP basic auth when non-empty.
	Username string
	Password string

	// SafeCharsForPathParam lists characters exempt from percent
	// encoding during path templating.
	SafeCharsForPathParam string

	// DefaultHeaders are merged into every request.
	DefaultHeaders map[string]string

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	mu            sync.RWMutex
	authSettings  map[string]AuthSetting
	tokenProvider TokenProvider
}

// Version is the library version, injected at build time.
var Version = "devel"

// New returns a Configuration with library defaults applied.
func New() *Configuration {
	return &Configuration{
		VerifyTLS:    true,
		UserAgent:    fmt.Sprintf("kubeclient/%s/go", Version),
		authSettings: make(map[string]AuthSetting),
	}
}

// SetAuthSetting registers a named credential.
func (c *Configuration) SetAuthSetting(name string, s AuthSetting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authSettings == nil {
		c.authSettings = make(map[string]AuthSetting)
	}
	c.authSettings[name] = s
}

// AuthSetting returns the named credential.
func (c *Configuration) AuthSetting(name string) (AuthSetting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.authSettings[name]
	return s, ok
}

// SetBearerToken is the single mutation point for credentials: it
// stores the token under the BearerToken auth setting as an
// `authorization` header value. Loaders and token providers call it;
// nothing else writes to a Configuration after hand-off.
func (c *Configuration) SetBearerToken(value string) {
	c.SetAuthSetting("BearerToken", AuthSetting{
		Location: InHeader,
		Key:      "authorization",
		Value:    value,
	})
}

// SetTokenProvider attaches a provider used by EnsureFreshToken.
func (c *Configuration) SetTokenProvider(p TokenProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenProvider = p
}

// EnsureFreshToken refreshes the bearer token in place when the
// attached provider reports expiry. It is a no-op without a provider.
func (c *Configuration) EnsureFreshToken(ctx context.Context) error {
	c.mu.RLock()
	p := c.tokenProvider
	c.mu.RUnlock()

	if p == nil {
		return nil
	}
	if exp := p.Expiry(); exp.IsZero() || time.Now().Before(exp) {
		return nil
	}

	token, err := p.Token(ctx)
	if err != nil {
		return &apierrors.ConfigError{Reason: "token refresh failed", Err: err}
	}
	c.SetBearerToken("Bearer " + token)
	return nil
}
