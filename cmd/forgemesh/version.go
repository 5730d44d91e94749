package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/forgemesh/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "forgemesh %s\n", version.GetVersion())
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.GitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
