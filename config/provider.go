package config

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/otterscale/kubeclient/apierrors"
)

// fileTokenProvider re-reads a projected service-account token file.
// Kubelet rotates the file on disk, so the expiry is approximated with
// a fixed re-read interval rather than parsed from the token.
type fileTokenProvider struct {
	path string

	mu       sync.Mutex
	token    string
	readAt   time.Time
	interval time.Duration
}

// NewFileTokenProvider returns a TokenProvider backed by a token file
// that is re-read once a minute.
func NewFileTokenProvider(path string) TokenProvider {
	return &fileTokenProvider{path: path, interval: time.Minute}
}

func (p *fileTokenProvider) Token(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	token, err := readNonEmpty(p.path, "token")
	if err != nil {
		return "", err
	}
	p.token = strings.TrimSpace(token)
	p.readAt = time.Now()
	return p.token, nil
}

func (p *fileTokenProvider) Expiry() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readAt.IsZero() {
		return time.Now().Add(-time.Second)
	}
	return p.readAt.Add(p.interval)
}

// oidcProvider implements the kubeconfig `oidc` auth provider: it
// serves the stored id-token while valid and renews it through the
// issuer's token endpoint with the refresh token once it expires.
type oidcProvider struct {
	issuerURL    string
	clientID     string
	clientSecret string

	mu           sync.Mutex
	idToken      string
	refreshToken string
	expiry       time.Time
}

// Kubeconfig auth-provider config keys, as written by kubectl.
const (
	oidcIssuerURL    = "idp-issuer-url"
	oidcClientID     = "client-id"
	oidcClientSecret = "client-secret"
	oidcIDToken      = "id-token"
	oidcRefreshToken = "refresh-token"
)

func newAuthProvider(ap *kubeAuthProvider) (TokenProvider, error) {
	if ap.Name != "oidc" {
		return nil, &apierrors.ConfigError{
			Reason: fmt.Sprintf("unsupported auth provider %q", ap.Name),
		}
	}
	issuer := ap.Config[oidcIssuerURL]
	if issuer == "" {
		return nil, &apierrors.ConfigError{Reason: "oidc auth provider has no idp-issuer-url"}
	}

	p := &oidcProvider{
		issuerURL:    issuer,
		clientID:     ap.Config[oidcClientID],
		clientSecret: ap.Config[oidcClientSecret],
		idToken:      ap.Config[oidcIDToken],
		refreshToken: ap.Config[oidcRefreshToken],
	}
	if p.idToken != "" {
		p.expiry = jwtExpiry(p.idToken)
	}
	return p, nil
}

func (p *oidcProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.idToken != "" && (p.expiry.IsZero() || time.Now().Before(p.expiry)) {
		return p.idToken, nil
	}
	if p.refreshToken == "" {
		return "", &apierrors.ConfigError{Reason: "oidc id-token expired and no refresh-token is set"}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := oidc.NewProvider(ctx, p.issuerURL)
	if err != nil {
		return "", &apierrors.ConfigError{Reason: "oidc issuer discovery failed", Err: err}
	}

	conf := &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		Endpoint:     provider.Endpoint(),
	}
	tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken}).Token()
	if err != nil {
		return "", &apierrors.ConfigError{Reason: "oidc token refresh failed", Err: err}
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", &apierrors.ConfigError{Reason: "oidc token response carried no id_token"}
	}

	p.idToken = idToken
	p.expiry = jwtExpiry(idToken)
	if tok.RefreshToken != "" {
		p.refreshToken = tok.RefreshToken
	}
	return p.idToken, nil
}

func (p *oidcProvider) Expiry() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiry
}

// jwtExpiry extracts the exp claim from an unverified JWT. The zero
// time is returned for anything that does not parse; verification is
// the API server's job, the client only schedules refreshes.
func jwtExpiry(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}
	}
	return time.Unix(claims.Exp, 0)
}

// NewStaticTokenProvider wraps a fixed token, mainly for tests and for
// callers that manage rotation themselves.
func NewStaticTokenProvider(token string) TokenProvider {
	return staticTokenProvider(token)
}

type staticTokenProvider string

func (p staticTokenProvider) Token(context.Context) (string, error) {
	if p == "" {
		return "", &apierrors.ConfigError{Reason: "static token is empty"}
	}
	return string(p), nil
}

func (staticTokenProvider) Expiry() time.Time { return time.Time{} }
