package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/console"
	"github.com/wsbridge/wsbridge-go/source"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Print every message of a remote websocket endpoint",
	Long: "Connect to the configured endpoint, reconnecting after the retry delay,\n" +
		"and write every received text message as one line to stdout.",
	Args: cobra.NoArgs,
	RunE: runSource,
}

func init() {
	addPipelineFlags(sourceCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, _ []string) error {
	props, err := loadProperties(config.RoleSource, true)
	if err != nil {
		return fmt.Errorf("wsbridge source: %w", err)
	}

	src := source.NewSource(config.RoleSource, nil)
	if err := src.Configure(props); err != nil {
		return fmt.Errorf("wsbridge source: %w", err)
	}

	return runPipeline(cmd.Context(), src, console.NewWriterSink("stdout", cmd.OutOrStdout(), nil))
}
