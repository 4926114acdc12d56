package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/otterscale/kubeclient/scheme"
	"github.com/otterscale/kubeclient/serializer"

	"github.com/otterscale/kubeclient/internal/config"
)

func NewGetCommand(conf *config.Config) (*cobra.Command, error) {
	var output string

	cmd := &cobra.Command{
		Use:     "get <resource> [name]",
		Short:   "List resources or print one resource",
		Example: "kubeclient get pods --namespace=kube-system -o yaml",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return runGet(cmd, conf, args[0], name, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "name", "Output format: name, json, or yaml")

	return cmd, nil
}

func runGet(cmd *cobra.Command, conf *config.Config, resourceName, name, output string) error {
	ops, err := lookupResource(resourceName)
	if err != nil {
		return err
	}

	cs, err := newClientset(conf)
	if err != nil {
		return err
	}
	defer cs.Close()

	ctx := cmd.Context()

	if name != "" {
		obj, err := ops.get(ctx, cs, conf.Namespace(), name)
		if err != nil {
			return err
		}
		return printObject(cmd, obj, output)
	}

	list, err := ops.list(ctx, cs, conf.Namespace(), listOptions(conf))
	if err != nil {
		return err
	}
	if output != "name" {
		return printObject(cmd, list, output)
	}
	for _, item := range list.List("items") {
		obj, ok := item.(*scheme.Object)
		if !ok {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), objectName(obj))
	}
	return nil
}

// printObject renders an object in the requested format. Server-side
// bookkeeping (managedFields, the kubectl last-applied annotation) is
// stripped first.
func printObject(cmd *cobra.Command, obj *scheme.Object, output string) error {
	tree, err := serializer.Marshal(obj)
	if err != nil {
		return err
	}
	if m, ok := tree.(map[string]any); ok {
		scheme.Clean(m)
	}

	switch output {
	case "name":
		fmt.Fprintln(cmd.OutOrStdout(), objectName(obj))
		return nil
	case "json":
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(tree)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
