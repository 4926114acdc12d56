package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/otterscale/kubeclient/rest"
	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/stream"
)

func TestListCall(t *testing.T) {
	call := pods.listCall("kube-system", ListOptions{
		LabelSelector:  "app=web",
		TimeoutSeconds: 30,
	})

	if call.Path != "/api/v1/namespaces/{namespace}/pods" {
		t.Errorf("Path = %q", call.Path)
	}
	if call.Method != http.MethodGet {
		t.Errorf("Method = %q", call.Method)
	}
	if got := call.PathParams["namespace"]; got != "kube-system" {
		t.Errorf("namespace param = %v", got)
	}
	want := []rest.Param{
		{Key: "labelSelector", Value: "app=web"},
		{Key: "timeoutSeconds", Value: int64(30)},
	}
	if diff := cmp.Diff(want, call.QueryParams); diff != "" {
		t.Errorf("QueryParams mismatch (-want +got):\n%s", diff)
	}
	if call.ResponseType != "V1PodList" || !call.Preload {
		t.Errorf("ResponseType=%q Preload=%v", call.ResponseType, call.Preload)
	}
	if got := call.HeaderParams["Accept"]; got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
	if diff := cmp.Diff([]string{"BearerToken"}, call.AuthNames); diff != "" {
		t.Errorf("AuthNames mismatch (-want +got):\n%s", diff)
	}
}

func TestListCallWatchMode(t *testing.T) {
	call := pods.listCall("default", ListOptions{Watch: true})
	if call.Preload {
		t.Error("watch call asked for preload")
	}
	want := []rest.Param{{Key: "watch", Value: true}}
	if diff := cmp.Diff(want, call.QueryParams); diff != "" {
		t.Errorf("QueryParams mismatch (-want +got):\n%s", diff)
	}
}

func TestClusterScopedPath(t *testing.T) {
	call := namespaces.getCall("", "kube-system", GetOptions{})
	if call.Path != "/api/v1/namespaces/{name}" {
		t.Errorf("Path = %q", call.Path)
	}
	if _, ok := call.PathParams["namespace"]; ok {
		t.Error("cluster-scoped call has a namespace param")
	}
}

func TestCreateCall(t *testing.T) {
	pod := scheme.MustBuild("V1Pod", map[string]any{"kind": "Pod"})
	call := pods.createCall("default", pod)

	if call.Method != http.MethodPost {
		t.Errorf("Method = %q", call.Method)
	}
	if call.Body != pod {
		t.Error("Body is not the given object")
	}
	if got := call.HeaderParams["Content-Type"]; got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestPatchCall(t *testing.T) {
	call := deployments.patchCall("default", "web", map[string]any{"spec": map[string]any{"replicas": 3}})
	if call.Method != http.MethodPatch {
		t.Errorf("Method = %q", call.Method)
	}
	if got := call.HeaderParams["Content-Type"]; got != patchContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if call.Path != "/apis/apps/v1/namespaces/{namespace}/deployments/{name}" {
		t.Errorf("Path = %q", call.Path)
	}
}

func TestDeleteCalls(t *testing.T) {
	call := pods.deleteCall("default", "web-0", DeleteOptions{
		GracePeriodSeconds: 30,
		PropagationPolicy:  "Foreground",
	}, nil)
	if call.Method != http.MethodDelete {
		t.Errorf("Method = %q", call.Method)
	}
	if call.Body != nil {
		t.Error("nil delete options produced a body")
	}
	if call.ResponseType != "V1Status" {
		t.Errorf("ResponseType = %q", call.ResponseType)
	}
	want := []rest.Param{
		{Key: "gracePeriodSeconds", Value: int64(30)},
		{Key: "propagationPolicy", Value: "Foreground"},
	}
	if diff := cmp.Diff(want, call.QueryParams); diff != "" {
		t.Errorf("QueryParams mismatch (-want +got):\n%s", diff)
	}

	body := scheme.MustBuild("V1DeleteOptions", map[string]any{"grace_period_seconds": 0})
	call = pods.deleteCall("default", "web-0", DeleteOptions{}, body)
	if call.Body != body {
		t.Error("delete options body was dropped")
	}

	collection := pods.deleteCollectionCall("default", ListOptions{Watch: true})
	if collection.ResponseType != "V1Status" || !collection.Preload {
		t.Errorf("collection call = %+v", collection)
	}
	for _, p := range collection.QueryParams {
		if p.Key == "watch" {
			t.Error("deleteCollection kept the watch flag")
		}
	}
}

func TestPodExecCall(t *testing.T) {
	call := podExecCall("default", "web-0", ExecOptions{
		Command:   []string{"uname", "-a"},
		Container: "app",
		Stdout:    true,
		Stderr:    true,
	})

	if !call.Upgrade {
		t.Error("exec call is not marked as an upgrade")
	}
	if call.Path != "/api/v1/namespaces/{namespace}/pods/{name}/exec" {
		t.Errorf("Path = %q", call.Path)
	}
	if got := call.HeaderParams["Sec-Websocket-Protocol"]; got != stream.Protocol {
		t.Errorf("subprotocol = %q", got)
	}
	want := []rest.Param{
		{Key: "command", Value: []string{"uname", "-a"}},
		{Key: "container", Value: "app"},
		{Key: "stdin", Value: false},
		{Key: "stdout", Value: true},
		{Key: "stderr", Value: true},
		{Key: "tty", Value: false},
	}
	if diff := cmp.Diff(want, call.QueryParams); diff != "" {
		t.Errorf("QueryParams mismatch (-want +got):\n%s", diff)
	}
}

func TestPodLogsCall(t *testing.T) {
	call := podLogsCall("default", "web-0", PodLogOptions{TailLines: 10})
	if call.Path != "/api/v1/namespaces/{namespace}/pods/{name}/log" {
		t.Errorf("Path = %q", call.Path)
	}
	if got := call.HeaderParams["Accept"]; got != "text/plain" {
		t.Errorf("Accept = %q", got)
	}
	if call.Preload {
		t.Error("log call asked for typed preload")
	}
	want := []rest.Param{{Key: "tailLines", Value: int64(10)}}
	if diff := cmp.Diff(want, call.QueryParams); diff != "" {
		t.Errorf("QueryParams mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptorsRegistered(t *testing.T) {
	for _, name := range []string{
		"V1ObjectMeta", "V1ListMeta", "V1Status", "V1DeleteOptions", "V1WatchEvent",
		"V1Namespace", "V1NamespaceList", "V1Pod", "V1PodList", "V1Container",
		"V1ConfigMap", "V1ConfigMapList",
		"V1Deployment", "V1DeploymentList", "V1LabelSelector",
	} {
		if _, ok := scheme.Lookup(name); !ok {
			t.Errorf("type %s not registered", name)
		}
	}
}
