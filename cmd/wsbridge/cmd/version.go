package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wsbridge version %s\ncommit: %s\nbuilt: %s\n", buildVersion, buildCommit, buildDate)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
