package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterscale/kubeclient/api"

	"github.com/otterscale/kubeclient/internal/config"
)

func NewExecCommand(conf *config.Config) (*cobra.Command, error) {
	var container string

	cmd := &cobra.Command{
		Use:     "exec <pod> -- <command> [args...]",
		Short:   "Run a command in a pod container and print its output",
		Example: "kubeclient exec nginx-7bd4f -- cat /etc/hostname",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, conf, args[0], container, args[1:])
		},
	}

	cmd.Flags().StringVarP(&container, "container", "c", "", "Container name (defaults to the only container)")

	return cmd, nil
}

func runExec(cmd *cobra.Command, conf *config.Config, pod, container string, command []string) error {
	cs, err := newClientset(conf)
	if err != nil {
		return err
	}
	defer cs.Close()

	session, err := cs.CoreV1().ExecPod(cmd.Context(), conf.Namespace(), pod, api.ExecOptions{
		Command:   command,
		Container: container,
		Stdout:    true,
		Stderr:    true,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	out, err := session.Collect(cmd.Context())
	if out != "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return err
}
