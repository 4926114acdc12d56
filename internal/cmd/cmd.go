// Package cmd defines the Cobra subcommands (get, watch, exec,
// version). It bridges the CLI configuration and the client library.
package cmd

import (
	"context"
	"fmt"

	"github.com/otterscale/kubeclient"
	"github.com/otterscale/kubeclient/api"
	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/watch"

	"github.com/otterscale/kubeclient/internal/config"
)

// newClientset builds the Clientset per the CLI configuration: the pod
// service account when --in-cluster is set, the kubeconfig otherwise.
func newClientset(conf *config.Config) (*kubeclient.Clientset, error) {
	if conf.InCluster() {
		return kubeclient.InCluster()
	}
	return kubeclient.FromKubeconfig(conf.KubeconfigPath(), conf.KubeconfigContext())
}

// resourceOps adapts one resource kind to the generic get/watch
// commands.
type resourceOps struct {
	kind       string
	namespaced bool
	list       func(ctx context.Context, cs *kubeclient.Clientset, namespace string, opts api.ListOptions) (*scheme.Object, error)
	get        func(ctx context.Context, cs *kubeclient.Clientset, namespace, name string) (*scheme.Object, error)
	watch      func(ctx context.Context, cs *kubeclient.Clientset, namespace string, opts api.ListOptions) (watch.Interface, error)
}

// resources maps resource names and their short aliases to operations.
var resources = map[string]resourceOps{
	"pods": {
		kind:       "Pod",
		namespaced: true,
		list: func(ctx context.Context, cs *kubeclient.Clientset, ns string, opts api.ListOptions) (*scheme.Object, error) {
			return cs.CoreV1().ListPods(ctx, ns, opts)
		},
		get: func(ctx context.Context, cs *kubeclient.Clientset, ns, name string) (*scheme.Object, error) {
			return cs.CoreV1().GetPod(ctx, ns, name, api.GetOptions{})
		},
		watch: func(ctx context.Context, cs *kubeclient.Clientset, ns string, opts api.ListOptions) (watch.Interface, error) {
			return cs.CoreV1().WatchPods(ctx, ns, opts)
		},
	},
	"namespaces": {
		kind: "Namespace",
		list: func(ctx context.Context, cs *kubeclient.Clientset, _ string, opts api.ListOptions) (*scheme.Object, error) {
			return cs.CoreV1().ListNamespaces(ctx, opts)
		},
		get: func(ctx context.Context, cs *kubeclient.Clientset, _, name string) (*scheme.Object, error) {
			return cs.CoreV1().GetNamespace(ctx, name, api.GetOptions{})
		},
		watch: func(ctx context.Context, cs *kubeclient.Clientset, _ string, opts api.ListOptions) (watch.Interface, error) {
			return cs.CoreV1().WatchNamespaces(ctx, opts)
		},
	},
	"configmaps": {
		kind:       "ConfigMap",
		namespaced: true,
		list: func(ctx context.Context, cs *kubeclient.Clientset, ns string, opts api.ListOptions) (*scheme.Object, error) {
			return cs.CoreV1().ListConfigMaps(ctx, ns, opts)
		},
		get: func(ctx context.Context, cs *kubeclient.Clientset, ns, name string) (*scheme.Object, error) {
			return cs.CoreV1().GetConfigMap(ctx, ns, name, api.GetOptions{})
		},
	},
	"deployments": {
		kind:       "Deployment",
		namespaced: true,
		list: func(ctx context.Context, cs *kubeclient.Clientset, ns string, opts api.ListOptions) (*scheme.Object, error) {
			return cs.AppsV1().ListDeployments(ctx, ns, opts)
		},
		get: func(ctx context.Context, cs *kubeclient.Clientset, ns, name string) (*scheme.Object, error) {
			return cs.AppsV1().GetDeployment(ctx, ns, name, api.GetOptions{})
		},
		watch: func(ctx context.Context, cs *kubeclient.Clientset, ns string, opts api.ListOptions) (watch.Interface, error) {
			return cs.AppsV1().WatchDeployments(ctx, ns, opts)
		},
	},
}

var resourceAliases = map[string]string{
	"pod": "pods", "po": "pods",
	"namespace": "namespaces", "ns": "namespaces",
	"configmap": "configmaps", "cm": "configmaps",
	"deployment": "deployments", "deploy": "deployments",
}

func lookupResource(name string) (resourceOps, error) {
	if canonical, ok := resourceAliases[name]; ok {
		name = canonical
	}
	ops, ok := resources[name]
	if !ok {
		return resourceOps{}, fmt.Errorf("unknown resource %q", name)
	}
	return ops, nil
}

// listOptions lifts the shared configuration into list/watch options.
func listOptions(conf *config.Config) api.ListOptions {
	return api.ListOptions{
		TimeoutSeconds: int64(conf.TimeoutSeconds()),
	}
}

// objectName reads metadata.name from a decoded object.
func objectName(obj *scheme.Object) string {
	if meta := obj.Object("metadata"); meta != nil {
		return meta.String("name")
	}
	return ""
}
