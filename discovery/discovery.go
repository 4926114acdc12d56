// Package discovery queries the cluster's non-resource endpoints,
// currently the /version endpoint.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/rest"
)

// VersionInfo is the payload of the /version endpoint.
type VersionInfo struct {
	Major        string `json:"major"`
	Minor        string `json:"minor"`
	GitVersion   string `json:"gitVersion"`
	GitCommit    string `json:"gitCommit"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate"`
	GoVersion    string `json:"goVersion"`
	Compiler     string `json:"compiler"`
	Platform     string `json:"platform"`
}

// Semver parses GitVersion, tolerating the conventional leading "v"
// and trailing build metadata like "+k3s1".
func (v *VersionInfo) Semver() (*semver.Version, error) {
	raw := strings.TrimPrefix(v.GitVersion, "v")
	parsed, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parse server version %q: %w", v.GitVersion, err)
	}
	return parsed, nil
}

// Client serves version discovery over an API transport.
type Client struct {
	rest *rest.Client
}

func NewClient(c *rest.Client) *Client {
	return &Client{rest: c}
}

// ServerVersion fetches and decodes the /version endpoint.
func (c *Client) ServerVersion(ctx context.Context) (*VersionInfo, error) {
	result, err := c.rest.Invoke(ctx, rest.Call{
		Path:   "/version",
		Method: http.MethodGet,
		HeaderParams: map[string]string{
			"Accept": rest.SelectHeaderAccept([]string{"application/json"}),
		},
		AuthNames: []string{"BearerToken"},
	})
	if err != nil {
		return nil, err
	}
	defer result.Resp.Close()

	body, err := result.Resp.ReadAll()
	if err != nil {
		return nil, err
	}

	info := new(VersionInfo)
	if err := json.Unmarshal(body, info); err != nil {
		return nil, &apierrors.SerializationError{Reason: "version response is not valid JSON", Err: err}
	}
	return info, nil
}
