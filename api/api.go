// Package api is the typed operation surface over the request builder:
// one method per supported Kubernetes verb and resource, each backed by
// a pure call description handed to the transport.
package api

import (
	"context"
	"net/http"

	"github.com/otterscale/kubeclient/rest"
	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/stream"
	"github.com/otterscale/kubeclient/watch"
)

// accepts is the media type preference advertised on every call. JSON
// wins negotiation; the others are advertised for server symmetry.
var accepts = []string{"application/json", "application/yaml", "application/vnd.kubernetes.protobuf"}

// bearerAuth names the Configuration auth settings typed calls use.
var bearerAuth = []string{"BearerToken"}

const patchContentType = "application/strategic-merge-patch+json"

// resource describes one REST resource: its API group prefix, plural
// name, and the registered types of its object and list forms. All call
// builders on it are pure.
type resource struct {
	prefix string // "/api/v1" or "/apis/apps/v1"
	plural string
	kind   string
	list   string
}

func (r resource) collectionPath(namespace string) (string, map[string]any) {
	if namespace == "" {
		return r.prefix + "/" + r.plural, nil
	}
	return r.prefix + "/namespaces/{namespace}/" + r.plural,
		map[string]any{"namespace": namespace}
}

func (r resource) itemPath(namespace, name string) (string, map[string]any) {
	path, params := r.collectionPath(namespace)
	if params == nil {
		params = make(map[string]any, 1)
	}
	params["name"] = name
	return path + "/{name}", params
}

func acceptHeader() map[string]string {
	return map[string]string{"Accept": rest.SelectHeaderAccept(accepts)}
}

func (r resource) listCall(namespace string, opts ListOptions) rest.Call {
	path, pathParams := r.collectionPath(namespace)
	return rest.Call{
		Path:         path,
		Method:       http.MethodGet,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: acceptHeader(),
		AuthNames:    bearerAuth,
		ResponseType: r.list,
		Preload:      !opts.Watch,
	}
}

func (r resource) getCall(namespace, name string, opts GetOptions) rest.Call {
	path, pathParams := r.itemPath(namespace, name)
	return rest.Call{
		Path:         path,
		Method:       http.MethodGet,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: acceptHeader(),
		AuthNames:    bearerAuth,
		ResponseType: r.kind,
		Preload:      true,
	}
}

func (r resource) createCall(namespace string, body *scheme.Object) rest.Call {
	path, pathParams := r.collectionPath(namespace)
	headers := acceptHeader()
	headers["Content-Type"] = rest.SelectHeaderContentType([]string{"application/json"})
	return rest.Call{
		Path:         path,
		Method:       http.MethodPost,
		PathParams:   pathParams,
		HeaderParams: headers,
		AuthNames:    bearerAuth,
		Body:         body,
		ResponseType: r.kind,
		Preload:      true,
	}
}

func (r resource) patchCall(namespace, name string, patch map[string]any) rest.Call {
	path, pathParams := r.itemPath(namespace, name)
	headers := acceptHeader()
	headers["Content-Type"] = rest.SelectHeaderContentType([]string{patchContentType})
	return rest.Call{
		Path:         path,
		Method:       http.MethodPatch,
		PathParams:   pathParams,
		HeaderParams: headers,
		AuthNames:    bearerAuth,
		Body:         patch,
		ResponseType: r.kind,
		Preload:      true,
	}
}

// deleteCall builds a single-object delete. body is an optional
// V1DeleteOptions carrying preconditions.
func (r resource) deleteCall(namespace, name string, opts DeleteOptions, body *scheme.Object) rest.Call {
	path, pathParams := r.itemPath(namespace, name)
	call := rest.Call{
		Path:         path,
		Method:       http.MethodDelete,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: acceptHeader(),
		AuthNames:    bearerAuth,
		ResponseType: "V1Status",
		Preload:      true,
	}
	if body != nil {
		call.Body = body
	}
	return call
}

func (r resource) deleteCollectionCall(namespace string, opts ListOptions) rest.Call {
	opts.Watch = false
	path, pathParams := r.collectionPath(namespace)
	return rest.Call{
		Path:         path,
		Method:       http.MethodDelete,
		PathParams:   pathParams,
		QueryParams:  opts.query(),
		HeaderParams: acceptHeader(),
		AuthNames:    bearerAuth,
		ResponseType: "V1Status",
		Preload:      true,
	}
}

// invoke runs a preloading call and unwraps the parsed object.
func invoke(ctx context.Context, c *rest.Client, call rest.Call) (*scheme.Object, error) {
	res, err := c.Invoke(ctx, call)
	if err != nil {
		return nil, err
	}
	return res.Parsed, nil
}

// openWatch issues a list call in watch mode and wraps the streaming
// response. The request is not sent until this point, and the stream is
// consumed no faster than the caller drains the channel.
func openWatch(ctx context.Context, c *rest.Client, r resource, namespace string, opts ListOptions) (watch.Interface, error) {
	opts.Watch = true
	call := r.listCall(namespace, opts)
	res, err := c.Invoke(ctx, call)
	if err != nil {
		return nil, err
	}
	return watch.New(res.Resp, r.kind), nil
}

// openStream builds an upgrade call and dials the websocket session.
func openStream(ctx context.Context, c *rest.Client, call rest.Call, opts ...stream.Option) (*stream.Session, error) {
	if err := c.Config().EnsureFreshToken(ctx); err != nil {
		return nil, err
	}
	spec, err := rest.BuildRequest(c.Config(), call)
	if err != nil {
		return nil, err
	}
	return stream.Connect(ctx, c, spec, opts...)
}
