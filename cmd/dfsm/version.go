package main

import (
	"strings"

	"github.com/aretw0/dfsm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dfsm",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dfsm version %s\n", strings.TrimSpace(dfsm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
