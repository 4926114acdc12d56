package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/otterscale/kubeclient/apierrors"
)

// Locations where Kubernetes mounts the service account credentials
// inside a pod.
const (
	InClusterTokenFile  = "/var/run/secrets/kubernetes.io/serviceaccount/token"
	InClusterCACertFile = "/var/run/secrets/kubernetes.io/serviceaccount/ca.crt"
)

// InClusterOptions override the default service-account file paths,
// mainly for tests.
type InClusterOptions struct {
	TokenFile  string
	CACertFile string
}

// InCluster builds a Configuration from the pod environment: the API
// server address from KUBERNETES_SERVICE_HOST/PORT and the mounted
// service-account token and CA bundle. Every input must be present and
// non-empty, otherwise a ConfigError is returned.
func InCluster(opts ...InClusterOptions) (*Configuration, error) {
	var o InClusterOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.TokenFile == "" {
		o.TokenFile = InClusterTokenFile
	}
	if o.CACertFile == "" {
		o.CACertFile = InClusterCACertFile
	}

	host := os.Getenv("KUBERNETES_SERVICE_HOST")
	port := os.Getenv("KUBERNETES_SERVICE_PORT")
	if host == "" || port == "" {
		return nil, &apierrors.ConfigError{Reason: "service host/port is either empty or not set"}
	}

	token, err := readNonEmpty(o.TokenFile, "token")
	if err != nil {
		return nil, err
	}
	if _, err := readNonEmpty(o.CACertFile, "CA certificate"); err != nil {
		// The bundle itself is loaded lazily by the transport; only
		// its presence is verified here.
		return nil, err
	}

	cfg := New()
	cfg.Host = "https://" + joinHostPort(host, port)
	cfg.SSLCACert = o.CACertFile
	cfg.SetBearerToken("bearer " + token)
	return cfg, nil
}

func readNonEmpty(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &apierrors.ConfigError{Reason: fmt.Sprintf("%s file %q is not readable", what, path), Err: err}
	}
	if len(data) == 0 {
		return "", &apierrors.ConfigError{Reason: fmt.Sprintf("%s file %q exists but is empty", what, path)}
	}
	return string(data), nil
}

// joinHostPort brackets IPv6 literals and scoped addresses the way
// net.JoinHostPort does.
func joinHostPort(host, port string) string {
	if strings.ContainsAny(host, ":%") {
		return "[" + host + "]:" + port
	}
	return host + ":" + port
}
