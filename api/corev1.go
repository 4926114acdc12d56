package api

import (
	"context"
	"net/http"

	"github.com/otterscale/kubeclient/rest"
	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/stream"
	"github.com/otterscale/kubeclient/watch"
)

var (
	pods       = resource{prefix: "/api/v1", plural: "pods", kind: "V1Pod", list: "V1PodList"}
	namespaces = resource{prefix: "/api/v1", plural: "namespaces", kind: "V1Namespace", list: "V1NamespaceList"}
	configMaps = resource{prefix: "/api/v1", plural: "configmaps", kind: "V1ConfigMap", list: "V1ConfigMapList"}
)

// CoreV1 exposes the core/v1 API group.
type CoreV1 struct {
	rest *rest.Client
}

func NewCoreV1(c *rest.Client) *CoreV1 {
	return &CoreV1{rest: c}
}

// Pods

func (c *CoreV1) ListPods(ctx context.Context, namespace string, opts ListOptions) (*scheme.Object, error) {
	opts.Watch = false
	return invoke(ctx, c.rest, pods.listCall(namespace, opts))
}

func (c *CoreV1) GetPod(ctx context.Context, namespace, name string, opts GetOptions) (*scheme.Object, error) {
	return invoke(ctx, c.rest, pods.getCall(namespace, name, opts))
}

func (c *CoreV1) CreatePod(ctx context.Context, namespace string, pod *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, pods.createCall(namespace, pod))
}

func (c *CoreV1) PatchPod(ctx context.Context, namespace, name string, patch map[string]any) (*scheme.Object, error) {
	return invoke(ctx, c.rest, pods.patchCall(namespace, name, patch))
}

// DeletePod deletes one pod. deleteOptions is an optional
// V1DeleteOptions body; pass nil for server defaults.
func (c *CoreV1) DeletePod(ctx context.Context, namespace, name string, opts DeleteOptions, deleteOptions *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, pods.deleteCall(namespace, name, opts, deleteOptions))
}

func (c *CoreV1) DeletePodCollection(ctx context.Context, namespace string, opts ListOptions) (*scheme.Object, error) {
	return invoke(ctx, c.rest, pods.deleteCollectionCall(namespace, opts))
}

func (c *CoreV1) WatchPods(ctx context.Context, namespace string, opts ListOptions) (watch.Interface, error) {
	return openWatch(ctx, c.rest, pods, namespace, opts)
}

// podLogsCall reads logs as plain text, so the Accept list differs from
// the typed calls and the body is never deserialized.
func podLogsCall(namespace, name string, opts PodLogOptions) rest.Call {
	path, pathParams := pods.itemPath(namespace, name)
	return rest.Call{
		Path:         path + "/log",
		Method:       http.MethodGet,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: map[string]string{"Accept": rest.SelectHeaderAccept([]string{"text/plain"})},
		AuthNames:    bearerAuth,
	}
}

// PodLogs returns the pod's log in one read. Follow is forced off; use
// StreamPodLogs to tail.
func (c *CoreV1) PodLogs(ctx context.Context, namespace, name string, opts PodLogOptions) (string, error) {
	opts.Follow = false
	res, err := c.rest.Invoke(ctx, podLogsCall(namespace, name, opts))
	if err != nil {
		return "", err
	}
	defer res.Resp.Close()

	body, err := res.Resp.ReadAll()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// StreamPodLogs returns the streaming log response; with Follow set the
// server keeps it open. The caller owns Close.
func (c *CoreV1) StreamPodLogs(ctx context.Context, namespace, name string, opts PodLogOptions) (*rest.Response, error) {
	res, err := c.rest.Invoke(ctx, podLogsCall(namespace, name, opts))
	if err != nil {
		return nil, err
	}
	return res.Resp, nil
}

// podExecCall builds the exec upgrade call: a GET whose query carries
// the command argv as repeated pairs plus the stream switches.
func podExecCall(namespace, name string, opts ExecOptions) rest.Call {
	path, pathParams := pods.itemPath(namespace, name)
	return rest.Call{
		Path:         path + "/exec",
		Method:       http.MethodGet,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: map[string]string{"Sec-Websocket-Protocol": stream.Protocol},
		AuthNames:    bearerAuth,
		Upgrade:      true,
	}
}

// ExecPod opens an exec session in a pod container. The caller either
// collects the output with Session.Collect or drives the channel frames
// directly.
func (c *CoreV1) ExecPod(ctx context.Context, namespace, name string, opts ExecOptions, sessionOpts ...stream.Option) (*stream.Session, error) {
	return openStream(ctx, c.rest, podExecCall(namespace, name, opts), sessionOpts...)
}

// Namespaces

func (c *CoreV1) ListNamespaces(ctx context.Context, opts ListOptions) (*scheme.Object, error) {
	opts.Watch = false
	return invoke(ctx, c.rest, namespaces.listCall("", opts))
}

func (c *CoreV1) GetNamespace(ctx context.Context, name string, opts GetOptions) (*scheme.Object, error) {
	return invoke(ctx, c.rest, namespaces.getCall("", name, opts))
}

func (c *CoreV1) CreateNamespace(ctx context.Context, namespace *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, namespaces.createCall("", namespace))
}

func (c *CoreV1) DeleteNamespace(ctx context.Context, name string, opts DeleteOptions, deleteOptions *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, namespaces.deleteCall("", name, opts, deleteOptions))
}

func (c *CoreV1) WatchNamespaces(ctx context.Context, opts ListOptions) (watch.Interface, error) {
	return openWatch(ctx, c.rest, namespaces, "", opts)
}

// ConfigMaps

func (c *CoreV1) ListConfigMaps(ctx context.Context, namespace string, opts ListOptions) (*scheme.Object, error) {
	opts.Watch = false
	return invoke(ctx, c.rest, configMaps.listCall(namespace, opts))
}

func (c *CoreV1) GetConfigMap(ctx context.Context, namespace, name string, opts GetOptions) (*scheme.Object, error) {
	return invoke(ctx, c.rest, configMaps.getCall(namespace, name, opts))
}

func (c *CoreV1) CreateConfigMap(ctx context.Context, namespace string, configMap *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, configMaps.createCall(namespace, configMap))
}

func (c *CoreV1) PatchConfigMap(ctx context.Context, namespace, name string, patch map[string]any) (*scheme.Object, error) {
	return invoke(ctx, c.rest, configMaps.patchCall(namespace, name, patch))
}

func (c *CoreV1) DeleteConfigMap(ctx context.Context, namespace, name string, opts DeleteOptions, deleteOptions *scheme.Object) (*scheme.Object, error) {
	return invoke(ctx, c.rest, configMaps.deleteCall(namespace, name, opts, deleteOptions))
}
