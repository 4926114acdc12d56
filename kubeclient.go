// Package kubeclient is an asynchronous Kubernetes API client: a
// schema-described serializer, a pure request builder, a pooled HTTP
// transport, a demand-driven watch stream, and a websocket exec
// channel, bundled behind a Clientset facade.
package kubeclient

import (
	"github.com/otterscale/kubeclient/api"
	"github.com/otterscale/kubeclient/config"
	"github.com/otterscale/kubeclient/discovery"
	"github.com/otterscale/kubeclient/rest"
)

// Clientset bundles one transport with the typed API groups built on
// it. All groups share the transport's connection pool and credential
// state; Close releases them together.
type Clientset struct {
	rest      *rest.Client
	coreV1    *api.CoreV1
	appsV1    *api.AppsV1
	discovery *discovery.Client
}

// NewForConfig builds a Clientset over the given Configuration.
func NewForConfig(cfg *config.Configuration) (*Clientset, error) {
	client, err := rest.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Clientset{
		rest:      client,
		coreV1:    api.NewCoreV1(client),
		appsV1:    api.NewAppsV1(client),
		discovery: discovery.NewClient(client),
	}, nil
}

// InCluster builds a Clientset from the pod's service account, for code
// running inside a cluster.
func InCluster() (*Clientset, error) {
	cfg, err := config.InCluster()
	if err != nil {
		return nil, err
	}
	return NewForConfig(cfg)
}

// FromKubeconfig builds a Clientset from a kubeconfig file. Empty path
// means the KUBECONFIG environment variable or ~/.kube/config; empty
// contextName means the file's current-context.
func FromKubeconfig(path, contextName string) (*Clientset, error) {
	if path == "" {
		path = config.KubeconfigPath()
	}
	cfg, err := config.FromKubeconfig(path, contextName)
	if err != nil {
		return nil, err
	}
	return NewForConfig(cfg)
}

// CoreV1 returns the core/v1 API group client.
func (c *Clientset) CoreV1() *api.CoreV1 { return c.coreV1 }

// AppsV1 returns the apps/v1 API group client.
func (c *Clientset) AppsV1() *api.AppsV1 { return c.appsV1 }

// Discovery returns the discovery client.
func (c *Clientset) Discovery() *discovery.Client { return c.discovery }

// REST returns the underlying transport, for callers building custom
// calls.
func (c *Clientset) REST() *rest.Client { return c.rest }

// Close releases the transport's pooled connections. Call it on every
// exit path; it is idempotent.
func (c *Clientset) Close() error { return c.rest.Close() }
