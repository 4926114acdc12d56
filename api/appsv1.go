package api

import (
	"context"

	"github.com/otterscale/kubeclient/rest"
	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/watch"
)

var deployments = resource{prefix: "/apis/apps/v1", plural: "deployments", kind: "V1Deployment", list: "V1DeploymentList"}

// AppsV1 exposes the apps/v1 API group.
type AppsV1 struct {
	rest *rest.Client
}

func NewAppsV1(c *rest.Client) *AppsV1 {
	return &AppsV1{rest: c}
}

func (c *AppsV1) ListDeployments(ctx context.Context, namespace string, opts ListOptions) (*scheme.Object, error) {
	opts.Watch = false
	return invoke(ctx, c.rest, deployments.listCall(namespace, opts))
}

func (c *AppsV1) GetDeployment(ctx context.Context, namespace, name string, opts GetOptions) (*scheme.Object, error) {
	return invoke(ctx, c.rest, deployments.getCall(namespace, name, opts))
}

func (c *AppsV1) CreateDeployment(ctx context.Context, namespace string, deployment *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, deployments.createCall(namespace, deployment))
}

func (c *AppsV1) PatchDeployment(ctx context.Context, namespace, name string, patch map[string]any) (*scheme.Object, error) {
	return invoke(ctx, c.rest, deployments.patchCall(namespace, name, patch))
}

func (c *AppsV1) DeleteDeployment(ctx context.Context, namespace, name string, opts DeleteOptions, deleteOptions *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, deployments.deleteCall(namespace, name, opts, deleteOptions))
}

func (c *AppsV1) WatchDeployments(ctx context.Context, namespace string, opts ListOptions) (watch.Interface, error) {
	return openWatch(ctx, c.rest, deployments, namespace, opts)
}
