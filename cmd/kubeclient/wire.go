//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/spf13/cobra"

	"github.com/otterscale/kubeclient/internal/cmd"
	"github.com/otterscale/kubeclient/internal/config"
)

func wireCmd(cmd.Version) (*cobra.Command, func(), error) {
	panic(wire.Build(
		cmd.ProviderSet,
		config.ProviderSet,
	))
}
