package scheme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		apiVersion string
		kind       string
		want       string
	}{
		{"v1", "Namespace", "V1Namespace"},
		{"v1", "NamespaceList", "V1NamespaceList"},
		{"v1", "Namespacelist", "V1NamespaceList"},
		{"apps/v1", "Deployment", "AppsV1Deployment"},
		{"extensions/v1beta1", "Deployment", "ExtensionsV1beta1Deployment"},
		{"extensions/v1beta1", "deployment", "ExtensionsV1beta1Deployment"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.apiVersion, tt.kind); got != tt.want {
			t.Errorf("TypeName(%q, %q) = %q, want %q", tt.apiVersion, tt.kind, got, tt.want)
		}
	}
}

func TestTypeNameForTree(t *testing.T) {
	tree := map[string]any{"apiVersion": "v1", "kind": "Pod"}
	if got := TypeNameForTree(tree); got != "V1Pod" {
		t.Errorf("TypeNameForTree() = %q, want V1Pod", got)
	}

	for _, tree := range []map[string]any{
		{"kind": "Pod"},
		{"apiVersion": "v1"},
		{"apiVersion": 1, "kind": "Pod"},
		{},
	} {
		if got := TypeNameForTree(tree); got != "" {
			t.Errorf("TypeNameForTree(%v) = %q, want empty", tree, got)
		}
	}
}

func TestClean(t *testing.T) {
	obj := map[string]any{
		"metadata": map[string]any{
			"name":          "demo",
			"managedFields": []any{map[string]any{"manager": "kubectl"}},
			"annotations": map[string]any{
				"kubectl.kubernetes.io/last-applied-configuration": "{}",
				"team": "core",
			},
		},
	}
	Clean(obj)

	want := map[string]any{
		"metadata": map[string]any{
			"name":        "demo",
			"annotations": map[string]any{"team": "core"},
		},
	}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanDropsEmptyAnnotations(t *testing.T) {
	obj := map[string]any{
		"metadata": map[string]any{
			"annotations": map[string]any{
				"kubectl.kubernetes.io/last-applied-configuration": "{}",
			},
		},
	}
	Clean(obj)

	meta := obj["metadata"].(map[string]any)
	if _, ok := meta["annotations"]; ok {
		t.Error("Clean() kept an empty annotations map")
	}
}
