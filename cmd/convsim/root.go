package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the convsim command tree: a single "run"
// subcommand today, structured this way so additional regimes or
// diagnostics subcommands can be added without reshaping main().
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CONVSIM")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "convsim",
		Short: "Run a demo sliding-window temporal convolution simulation",
	}

	root.AddCommand(NewRunCommand(v))
	return root
}
