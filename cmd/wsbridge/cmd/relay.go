package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/sink"
	"github.com/wsbridge/wsbridge-go/source"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Rebroadcast a remote websocket endpoint to local clients",
	Long: "Connect to the endpoint of the source section and broadcast every received\n" +
		"message to the clients of the websocket endpoint served by the sink section.\n" +
		"Properties are scoped by role, e.g. --set source.endpoint=ws://host:8080 --set sink.port=9000.",
	Args: cobra.NoArgs,
	RunE: runRelay,
}

func init() {
	addPipelineFlags(relayCmd)
	rootCmd.AddCommand(relayCmd)
}

func runRelay(cmd *cobra.Command, _ []string) error {
	sourceProps, err := loadProperties(config.RoleSource, false)
	if err != nil {
		return fmt.Errorf("wsbridge relay: %w", err)
	}
	sinkProps, err := loadProperties(config.RoleSink, false)
	if err != nil {
		return fmt.Errorf("wsbridge relay: %w", err)
	}

	src := source.NewSource(config.RoleSource, nil)
	if err := src.Configure(sourceProps); err != nil {
		return fmt.Errorf("wsbridge relay: %w", err)
	}
	dst := sink.NewSink(config.RoleSink, nil)
	if err := dst.Configure(sinkProps); err != nil {
		return fmt.Errorf("wsbridge relay: %w", err)
	}

	return runPipeline(cmd.Context(), src, dst)
}
