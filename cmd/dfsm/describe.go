package main

import (
	"github.com/aretw0/dfsm/internal/cli"
	"github.com/aretw0/dfsm/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe FILE",
	Short: "Describe a machine",
	Long:  `Prints the states, accepting states and transitions of a machine as markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return cli.Describe(env, args[0], tui.NewRenderer())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
