package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/dfsm/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfsm",
	Short: "dfsm validates and runs deterministic finite state machines",
	Long: `dfsm loads machines from YAML or JSON files, validates them, runs them on
input sequences and renders them as Mermaid or Graphviz diagrams. It can also
serve a machine catalog over HTTP or MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !cli.Silent(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("format", envOr("DFSM_FORMAT", "text"), "Output format: text or json [DFSM_FORMAT]")
	rootCmd.PersistentFlags().String("log-level", envOr("DFSM_LOG_LEVEL", "warn"), "Log level: debug, info, warn or error [DFSM_LOG_LEVEL]")
}

// newEnv builds the command environment from the global flags.
func newEnv(cmd *cobra.Command) (*cli.Env, error) {
	format, _ := cmd.Flags().GetString("format")
	level, _ := cmd.Flags().GetString("log-level")
	return cli.NewEnv(cmd.OutOrStdout(), format, level)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
