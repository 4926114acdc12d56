package api

import "github.com/otterscale/kubeclient/scheme"

// Descriptor tables for the supported API types. The shape mirrors the
// upstream OpenAPI document: snake_case attribute names mapped to the
// camelCase wire keys, declared types in the registry grammar. Only the
// attributes this client exposes are listed; unknown wire fields are
// ignored on decode by construction.

func init() {
	for _, d := range metaTypes {
		scheme.MustRegister(d)
	}
	for _, d := range coreV1Types {
		scheme.MustRegister(d)
	}
	for _, d := range appsV1Types {
		scheme.MustRegister(d)
	}
}

var metaTypes = []*scheme.Descriptor{
	{
		Name: "V1ObjectMeta",
		Attrs: []scheme.Attr{
			{Name: "name", Wire: "name", Type: "str"},
			{Name: "generate_name", Wire: "generateName", Type: "str"},
			{Name: "namespace", Wire: "namespace", Type: "str"},
			{Name: "uid", Wire: "uid", Type: "str"},
			{Name: "resource_version", Wire: "resourceVersion", Type: "str"},
			{Name: "generation", Wire: "generation", Type: "int"},
			{Name: "creation_timestamp", Wire: "creationTimestamp", Type: "datetime"},
			{Name: "deletion_timestamp", Wire: "deletionTimestamp", Type: "datetime"},
			{Name: "labels", Wire: "labels", Type: "dict(str, str)"},
			{Name: "annotations", Wire: "annotations", Type: "dict(str, str)"},
			{Name: "finalizers", Wire: "finalizers", Type: "list[str]"},
			{Name: "owner_references", Wire: "ownerReferences", Type: "list[object]"},
			{Name: "managed_fields", Wire: "managedFields", Type: "list[object]"},
		},
	},
	{
		Name: "V1ListMeta",
		Attrs: []scheme.Attr{
			{Name: "resource_version", Wire: "resourceVersion", Type: "str"},
			{Name: "continue_token", Wire: "continue", Type: "str"},
			{Name: "remaining_item_count", Wire: "remainingItemCount", Type: "int"},
		},
	},
	{
		Name: "V1Status",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ListMeta"},
			{Name: "status", Wire: "status", Type: "str"},
			{Name: "message", Wire: "message", Type: "str"},
			{Name: "reason", Wire: "reason", Type: "str"},
			{Name: "code", Wire: "code", Type: "int"},
			{Name: "details", Wire: "details", Type: "object"},
		},
	},
	{
		Name: "V1Preconditions",
		Attrs: []scheme.Attr{
			{Name: "resource_version", Wire: "resourceVersion", Type: "str"},
			{Name: "uid", Wire: "uid", Type: "str"},
		},
	},
	{
		Name: "V1DeleteOptions",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "dry_run", Wire: "dryRun", Type: "list[str]"},
			{Name: "grace_period_seconds", Wire: "gracePeriodSeconds", Type: "int"},
			{Name: "orphan_dependents", Wire: "orphanDependents", Type: "bool"},
			{Name: "preconditions", Wire: "preconditions", Type: "V1Preconditions"},
			{Name: "propagation_policy", Wire: "propagationPolicy", Type: "str"},
		},
	},
	{
		Name: "V1WatchEvent",
		Attrs: []scheme.Attr{
			{Name: "type", Wire: "type", Type: "str", Required: true},
			{Name: "object", Wire: "object", Type: "object", Required: true},
		},
	},
}

var coreV1Types = []*scheme.Descriptor{
	{
		Name: "V1Namespace",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ObjectMeta"},
			{Name: "spec", Wire: "spec", Type: "V1NamespaceSpec"},
			{Name: "status", Wire: "status", Type: "V1NamespaceStatus"},
		},
	},
	{
		Name: "V1NamespaceSpec",
		Attrs: []scheme.Attr{
			{Name: "finalizers", Wire: "finalizers", Type: "list[str]"},
		},
	},
	{
		Name: "V1NamespaceStatus",
		Attrs: []scheme.Attr{
			{Name: "phase", Wire: "phase", Type: "str"},
		},
	},
	{
		Name: "V1NamespaceList",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ListMeta"},
			{Name: "items", Wire: "items", Type: "list[V1Namespace]", Required: true},
		},
	},
	{
		Name: "V1EnvVar",
		Attrs: []scheme.Attr{
			{Name: "name", Wire: "name", Type: "str", Required: true},
			{Name: "value", Wire: "value", Type: "str"},
		},
	},
	{
		Name: "V1Container",
		Attrs: []scheme.Attr{
			{Name: "name", Wire: "name", Type: "str", Required: true},
			{Name: "image", Wire: "image", Type: "str"},
			{Name: "command", Wire: "command", Type: "list[str]"},
			{Name: "args", Wire: "args", Type: "list[str]"},
			{Name: "working_dir", Wire: "workingDir", Type: "str"},
			{Name: "env", Wire: "env", Type: "list[V1EnvVar]"},
		},
	},
	{
		Name: "V1PodSpec",
		Attrs: []scheme.Attr{
			{Name: "containers", Wire: "containers", Type: "list[V1Container]", Required: true},
			{Name: "node_name", Wire: "nodeName", Type: "str"},
			{Name: "restart_policy", Wire: "restartPolicy", Type: "str"},
			{Name: "service_account_name", Wire: "serviceAccountName", Type: "str"},
			{Name: "termination_grace_period_seconds", Wire: "terminationGracePeriodSeconds", Type: "int"},
		},
	},
	{
		Name: "V1PodStatus",
		Attrs: []scheme.Attr{
			{Name: "phase", Wire: "phase", Type: "str"},
			{Name: "pod_ip", Wire: "podIP", Type: "str"},
			{Name: "host_ip", Wire: "hostIP", Type: "str"},
			{Name: "qos_class", Wire: "qosClass", Type: "str"},
			{Name: "start_time", Wire: "startTime", Type: "datetime"},
		},
	},
	{
		Name: "V1Pod",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ObjectMeta"},
			{Name: "spec", Wire: "spec", Type: "V1PodSpec"},
			{Name: "status", Wire: "status", Type: "V1PodStatus"},
		},
	},
	{
		Name: "V1PodList",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ListMeta"},
			{Name: "items", Wire: "items", Type: "list[V1Pod]", Required: true},
		},
	},
	{
		Name: "V1ConfigMap",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ObjectMeta"},
			{Name: "data", Wire: "data", Type: "dict(str, str)"},
			{Name: "binary_data", Wire: "binaryData", Type: "dict(str, str)"},
			{Name: "immutable", Wire: "immutable", Type: "bool"},
		},
	},
	{
		Name: "V1ConfigMapList",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ListMeta"},
			{Name: "items", Wire: "items", Type: "list[V1ConfigMap]", Required: true},
		},
	},
}

var appsV1Types = []*scheme.Descriptor{
	{
		Name: "V1LabelSelector",
		Attrs: []scheme.Attr{
			{Name: "match_labels", Wire: "matchLabels", Type: "dict(str, str)"},
			{Name: "match_expressions", Wire: "matchExpressions", Type: "list[object]"},
		},
	},
	{
		Name: "V1PodTemplateSpec",
		Attrs: []scheme.Attr{
			{Name: "metadata", Wire: "metadata", Type: "V1ObjectMeta"},
			{Name: "spec", Wire: "spec", Type: "V1PodSpec"},
		},
	},
	{
		Name: "V1DeploymentSpec",
		Attrs: []scheme.Attr{
			{Name: "replicas", Wire: "replicas", Type: "int"},
			{Name: "selector", Wire: "selector", Type: "V1LabelSelector", Required: true},
			{Name: "template", Wire: "template", Type: "V1PodTemplateSpec", Required: true},
			{Name: "strategy", Wire: "strategy", Type: "object"},
			{Name: "paused", Wire: "paused", Type: "bool"},
		},
	},
	{
		Name: "V1DeploymentStatus",
		Attrs: []scheme.Attr{
			{Name: "observed_generation", Wire: "observedGeneration", Type: "int"},
			{Name: "replicas", Wire: "replicas", Type: "int"},
			{Name: "updated_replicas", Wire: "updatedReplicas", Type: "int"},
			{Name: "ready_replicas", Wire: "readyReplicas", Type: "int"},
			{Name: "available_replicas", Wire: "availableReplicas", Type: "int"},
		},
	},
	{
		Name: "V1Deployment",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ObjectMeta"},
			{Name: "spec", Wire: "spec", Type: "V1DeploymentSpec"},
			{Name: "status", Wire: "status", Type: "V1DeploymentStatus"},
		},
	},
	{
		Name: "V1DeploymentList",
		Attrs: []scheme.Attr{
			{Name: "api_version", Wire: "apiVersion", Type: "str"},
			{Name: "kind", Wire: "kind", Type: "str"},
			{Name: "metadata", Wire: "metadata", Type: "V1ListMeta"},
			{Name: "items", Wire: "items", Type: "list[V1Deployment]", Required: true},
		},
	},
}
