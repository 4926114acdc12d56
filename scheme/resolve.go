package scheme

import (
	"strings"
)

// TypeName composes the registry name for a wire object from its
// apiVersion and kind, copied verbatim from the manifest. Each path
// segment of the apiVersion has its first character upper-cased and
// the segments are concatenated, then the kind with its first
// character upper-cased is appended:
//
//	("v1", "Namespace")                      -> "V1Namespace"
//	("extensions/v1beta1", "Deployment")     -> "ExtensionsV1beta1Deployment"
//
// A trailing "list" is normalised to "List" so collection kinds match
// their registered names.
func TypeName(apiVersion, kind string) string {
	var b strings.Builder
	for _, word := range strings.Split(apiVersion, "/") {
		b.WriteString(capitalize(word))
	}
	b.WriteString(capitalize(kind))

	name := b.String()
	if strings.HasSuffix(name, "list") {
		name = strings.TrimSuffix(name, "list") + "List"
	}
	return name
}

// TypeNameForTree resolves the registry name for a decoded wire tree
// using its embedded apiVersion/kind discriminator. Returns "" when
// either field is missing or not a string.
func TypeNameForTree(tree map[string]any) string {
	apiVersion, ok := tree["apiVersion"].(string)
	if !ok || apiVersion == "" {
		return ""
	}
	kind, ok := tree["kind"].(string)
	if !ok || kind == "" {
		return ""
	}
	return TypeName(apiVersion, kind)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Clean strips noisy metadata from a raw Kubernetes object map:
//   - metadata.managedFields (server-side apply bookkeeping)
//   - the kubectl.kubernetes.io/last-applied-configuration annotation
//
// This is a presentation concern for callers that print raw objects;
// the serializer never calls it.
func Clean(obj map[string]any) {
	metadata, ok := obj["metadata"].(map[string]any)
	if !ok {
		return
	}
	delete(metadata, "managedFields")

	annotations, ok := metadata["annotations"].(map[string]any)
	if !ok || len(annotations) == 0 {
		return
	}
	delete(annotations, "kubectl.kubernetes.io/last-applied-configuration")
	if len(annotations) == 0 {
		delete(metadata, "annotations")
	}
}
