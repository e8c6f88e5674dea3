package main

import (
	"github.com/aretw0/dfsm/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the machine diagram",
	Long: `Outputs a Mermaid flowchart (default) or a Graphviz digraph of the machine.
With --trace, the states visited by that input are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		style, _ := cmd.Flags().GetString("style")
		trace, _ := cmd.Flags().GetStringSlice("trace")
		return cli.Graph(env, args[0], style, trace)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("style", "mermaid", "Diagram language: mermaid or dot")
	graphCmd.Flags().StringSlice("trace", nil, "Comma-separated input whose visited states are highlighted")
}
