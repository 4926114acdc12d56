package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterscale/kubeclient/internal/config"
)

func NewVersionCommand(conf *config.Config, clientVersion string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, conf, clientVersion)
		},
	}

	return cmd, nil
}

func runVersion(cmd *cobra.Command, conf *config.Config, clientVersion string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Client version: %s\n", clientVersion)

	cs, err := newClientset(conf)
	if err != nil {
		return err
	}
	defer cs.Close()

	info, err := cs.Discovery().ServerVersion(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server version: %s (%s/%s)\n", info.GitVersion, info.Platform, info.GoVersion)

	if v, err := info.Semver(); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Server semver:  %d.%d.%d\n", v.Major(), v.Minor(), v.Patch())
	}
	return nil
}
