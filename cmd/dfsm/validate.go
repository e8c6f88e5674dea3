package main

import (
	"github.com/aretw0/dfsm/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a machine file for consistency",
	Long: `Builds the machine described by FILE and reports the first construction error.
A valid machine is also linted for unreachable states, dead ends and missing transitions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return cli.Validate(env, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
