package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/console"
	"github.com/wsbridge/wsbridge-go/sink"
)

var sinkCmd = &cobra.Command{
	Use:   "sink",
	Short: "Broadcast every line of stdin to websocket clients",
	Long: "Serve a websocket endpoint on the configured host and port and broadcast\n" +
		"every line read from stdin as a text message to all connected clients.",
	Args: cobra.NoArgs,
	RunE: runSink,
}

func init() {
	addPipelineFlags(sinkCmd)
	rootCmd.AddCommand(sinkCmd)
}

func runSink(cmd *cobra.Command, _ []string) error {
	props, err := loadProperties(config.RoleSink, true)
	if err != nil {
		return fmt.Errorf("wsbridge sink: %w", err)
	}

	dst := sink.NewSink(config.RoleSink, nil)
	if err := dst.Configure(props); err != nil {
		return fmt.Errorf("wsbridge sink: %w", err)
	}

	return runPipeline(cmd.Context(), console.NewReaderSource("stdin", cmd.InOrStdin(), nil), dst)
}
