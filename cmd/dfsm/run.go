package main

import (
	"github.com/aretw0/dfsm/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run FILE [SYMBOL...]",
	Short: "Run a machine on an input sequence",
	Long: `Runs the machine described by FILE on the given symbols and prints the
visited states, the terminal state and whether the input is accepted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		outputs, _ := cmd.Flags().GetBool("outputs")
		return cli.Run(env, args[0], args[1:], outputs)
	},
}

// acceptsCmd represents the accepts command
var acceptsCmd = &cobra.Command{
	Use:   "accepts FILE [SYMBOL...]",
	Short: "Check whether a machine accepts an input sequence",
	Long:  `Exits with status 0 when the input is accepted, 2 when it is rejected and 1 on error.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return cli.Accepts(env, args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(acceptsCmd)

	runCmd.Flags().Bool("outputs", false, "Collect Moore/Mealy outputs")
}
