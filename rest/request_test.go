package rest

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/config"
)

func testConfig() *config.Configuration {
	cfg := config.New()
	cfg.Host = "https://k8s.example.com:6443"
	return cfg
}

func TestBuildRequestPathTemplating(t *testing.T) {
	cfg := testConfig()
	spec, err := BuildRequest(cfg, Call{
		Path:   "/api/v1/namespaces/{namespace}/pods/{name}/exec",
		Method: "get",
		PathParams: map[string]any{
			"namespace": "kube-system",
			"name":      "pod name/odd",
		},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}

	want := "https://k8s.example.com:6443/api/v1/namespaces/kube-system/pods/pod%20name%2Fodd/exec"
	if spec.URL != want {
		t.Errorf("URL = %q, want %q", spec.URL, want)
	}
	if spec.Method != http.MethodGet {
		t.Errorf("Method = %q, want GET", spec.Method)
	}
}

func TestBuildRequestSafeChars(t *testing.T) {
	cfg := testConfig()
	cfg.SafeCharsForPathParam = "/"

	spec, err := BuildRequest(cfg, Call{
		Path:       "/apis/{group}",
		Method:     "GET",
		PathParams: map[string]any{"group": "apps/v1"},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if !strings.HasSuffix(spec.URL, "/apis/apps/v1") {
		t.Errorf("URL = %q, want slash preserved", spec.URL)
	}
}

func TestBuildRequestQueryFlattening(t *testing.T) {
	spec, err := BuildRequest(testConfig(), Call{
		Path:   "/api/v1/pods",
		Method: "GET",
		QueryParams: []Param{
			{Key: "command", Value: []string{"ls", "-l", "/tmp"}},
			{Key: "stdout", Value: true},
			{Key: "limit", Value: 10},
		},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}

	want := []Pair{
		{Key: "command", Value: "ls"},
		{Key: "command", Value: "-l"},
		{Key: "command", Value: "/tmp"},
		{Key: "stdout", Value: "true"},
		{Key: "limit", Value: "10"},
	}
	if diff := cmp.Diff(want, spec.Query); diff != "" {
		t.Errorf("Query mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasSuffix(spec.URL, "?command=ls&command=-l&command=%2Ftmp&stdout=true&limit=10") {
		t.Errorf("URL = %q, query order or encoding wrong", spec.URL)
	}
}

func TestBuildRequestDeterministic(t *testing.T) {
	call := Call{
		Path:       "/api/v1/namespaces/{namespace}/pods",
		Method:     "GET",
		PathParams: map[string]any{"namespace": "default"},
		QueryParams: []Param{
			{Key: "labelSelector", Value: "app=web"},
			{Key: "watch", Value: true},
		},
		HeaderParams: map[string]string{"Accept": "application/json"},
	}

	a, err := BuildRequest(testConfig(), call)
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	b, err := BuildRequest(testConfig(), call)
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical inputs produced different specs (-a +b):\n%s", diff)
	}
}

func TestBuildRequestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.SetBearerToken("Bearer tok-123")
	cfg.SetAuthSetting("QueryKey", config.AuthSetting{
		Location: config.InQuery,
		Key:      "key",
		Value:    "sekret",
	})
	cfg.SetAuthSetting("Empty", config.AuthSetting{
		Location: config.InHeader,
		Key:      "x-empty",
	})

	spec, err := BuildRequest(cfg, Call{
		Path:      "/api/v1/pods",
		Method:    "GET",
		AuthNames: []string{"BearerToken", "QueryKey", "Empty"},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if got := spec.Headers["authorization"]; got != "Bearer tok-123" {
		t.Errorf("authorization header = %q", got)
	}
	if _, ok := spec.Headers["x-empty"]; ok {
		t.Error("empty auth setting was injected")
	}
	want := []Pair{{Key: "key", Value: "sekret"}}
	if diff := cmp.Diff(want, spec.Query); diff != "" {
		t.Errorf("Query mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRequestUnknownAuthLocation(t *testing.T) {
	cfg := testConfig()
	cfg.SetAuthSetting("Broken", config.AuthSetting{
		Location: "cookie",
		Key:      "session",
		Value:    "x",
	})

	_, err := BuildRequest(cfg, Call{Path: "/", Method: "GET", AuthNames: []string{"Broken"}})
	if !apierrors.IsConfig(err) {
		t.Errorf("BuildRequest() error = %v, want ConfigError", err)
	}
}

func TestBuildRequestBodyAndPostParamsConflict(t *testing.T) {
	_, err := BuildRequest(testConfig(), Call{
		Path:       "/",
		Method:     "POST",
		Body:       map[string]any{"a": 1},
		PostParams: map[string]any{"b": "2"},
	})
	if !apierrors.IsValidation(err) {
		t.Errorf("BuildRequest() error = %v, want ValidationError", err)
	}
}

func TestBuildRequestJSONBody(t *testing.T) {
	spec, err := BuildRequest(testConfig(), Call{
		Path:   "/api/v1/namespaces",
		Method: "POST",
		Body:   map[string]any{"kind": "Namespace"},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if got := spec.Headers["Content-Type"]; got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if string(spec.Body) != `{"kind":"Namespace"}` {
		t.Errorf("Body = %s", spec.Body)
	}
}

func TestBuildRequestFormBody(t *testing.T) {
	spec, err := BuildRequest(testConfig(), Call{
		Path:       "/token",
		Method:     "POST",
		PostParams: map[string]any{"grant_type": "refresh_token"},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if got := spec.Headers["Content-Type"]; got != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", got)
	}
	if string(spec.Body) != "grant_type=refresh_token" {
		t.Errorf("Body = %s", spec.Body)
	}
}

func TestBuildRequestDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultHeaders = map[string]string{"X-Team": "core"}

	spec, err := BuildRequest(cfg, Call{Path: "/", Method: "GET"})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if spec.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", spec.Timeout, DefaultTimeout)
	}
	if got := spec.Headers["X-Team"]; got != "core" {
		t.Errorf("default header missing, headers = %v", spec.Headers)
	}
	if got := spec.Headers["User-Agent"]; !strings.HasPrefix(got, "kubeclient/") {
		t.Errorf("User-Agent = %q", got)
	}

	spec, err = BuildRequest(cfg, Call{Path: "/", Method: "GET", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if spec.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", spec.Timeout)
	}
}
