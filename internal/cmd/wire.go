package cmd

import "github.com/google/wire"

// ProviderSet is the Wire provider set for the CLI layer.
var ProviderSet = wire.NewSet(NewRootCommand)
