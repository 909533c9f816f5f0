// Package cmd implements the wsbridge CLI commands.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/logging"
	"github.com/wsbridge/wsbridge-go/metrics"
)

const metricsShutdownTimeout = 5 * time.Second

var (
	logLevel    string
	metricsAddr string

	metricsServer *http.Server
)

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf("wsbridge version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate)
}

var rootCmd = &cobra.Command{
	Use:   "wsbridge",
	Short: "wsbridge moves text messages between websockets and an event pipeline",
	Long: "wsbridge connects to a remote websocket endpoint and feeds every text message\n" +
		"into an event channel, or serves a websocket endpoint that broadcasts every\n" +
		"event taken from the channel to all connected clients.",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9100")

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	setupLogger(cmd, logLevel)

	if metricsAddr == "" {
		return nil
	}

	server, addr, err := metrics.ServeMetrics(metricsAddr)
	if err != nil {
		return fmt.Errorf("wsbridge: metrics: %w", err)
	}
	metricsServer = server
	logging.Log().Infof("metrics available at http://%s/metrics", addr)

	return nil
}

func teardown(*cobra.Command, []string) error {
	if metricsServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()

	err := metricsServer.Shutdown(ctx)
	metricsServer = nil
	return err
}

func setupLogger(cmd *cobra.Command, level string) {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logging.ParseLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logging.SetLogging(logging.NewLogrusLogging(logger).WithField("version", buildVersion))
}
