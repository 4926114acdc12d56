package cmd

import (
	"github.com/spf13/cobra"

	"github.com/otterscale/kubeclient/internal/config"
)

// Version is the build-time client version, injected by main.
type Version string

// NewRootCommand constructs the root Cobra command and registers the
// subcommands. The optional metrics listener is started once the
// command runs, so every subcommand exposes the transport counters.
func NewRootCommand(conf *config.Config, version Version) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:           "kubeclient",
		Short:         "kubeclient: a minimal Kubernetes API client",
		Version:       string(version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupMetrics(cmd.Context(), conf.MetricsAddress())
		},
	}

	if err := conf.BindFlags(c.PersistentFlags(), config.Options); err != nil {
		return nil, err
	}

	getCmd, err := NewGetCommand(conf)
	if err != nil {
		return nil, err
	}
	watchCmd, err := NewWatchCommand(conf)
	if err != nil {
		return nil, err
	}
	execCmd, err := NewExecCommand(conf)
	if err != nil {
		return nil, err
	}
	versionCmd, err := NewVersionCommand(conf, string(version))
	if err != nil {
		return nil, err
	}

	c.AddCommand(getCmd, watchCmd, execCmd, versionCmd)

	return c, nil
}
