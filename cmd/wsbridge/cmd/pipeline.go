package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/api"
	"github.com/wsbridge/wsbridge-go/channel"
	"github.com/wsbridge/wsbridge-go/config"
	"github.com/wsbridge/wsbridge-go/hub"
	"github.com/wsbridge/wsbridge-go/logging"
)

var (
	cfgFile     string
	propsFile   string
	assignments []string
	capacity    int
	keepAlive   time.Duration
)

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML file with source: and sink: sections")
	cmd.Flags().StringVar(&propsFile, "properties", "", "KEY=VALUE properties file")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "override a property, e.g. --set source.endpoint=ws://host:8080")
	cmd.Flags().IntVar(&capacity, "capacity", channel.DefaultCapacity, "number of events buffered between source and sink")
	cmd.Flags().DurationVar(&keepAlive, "keep-alive", channel.DefaultKeepAlive, "how long the sink waits for an event per poll")
}

// loadProperties collects the properties of one role from the YAML section,
// the properties file and --set overrides, later sources win.
// Keys prefixed with "<role>." always apply, unprefixed keys only when
// the command runs a single role.
func loadProperties(role string, single bool) (config.Properties, error) {
	result := config.Properties{}

	if cfgFile != "" {
		sections, err := config.FromYAMLFile(cfgFile)
		if err != nil {
			return nil, err
		}
		result = sections[role].Clone()
	}

	var layers []config.Properties
	if propsFile != "" {
		props, err := config.FromPropertiesFile(propsFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, props)
	}

	overrides, err := config.ParseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	layers = append(layers, overrides)

	for _, layer := range layers {
		if single {
			if result, err = config.Merge(result, unprefixed(layer)); err != nil {
				return nil, err
			}
		}
		if result, err = config.Merge(result, config.ForRole(layer, role)); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// keys that are not scoped to a role
func unprefixed(props config.Properties) config.Properties {
	result := config.Properties{}
	for key, value := range props {
		if strings.HasPrefix(key, config.RoleSource+".") || strings.HasPrefix(key, config.RoleSink+".") {
			continue
		}
		result[key] = value
	}
	return result
}

// runPipeline runs source and sink until the context is done or a signal arrives
func runPipeline(ctx context.Context, source api.EventDrivenSource, sink api.PollableSink) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	h := hub.NewHub(source, sink, channel.NewMemoryChannel(capacity, keepAlive))
	if err := h.Start(); err != nil {
		h.Shutdown()
		return fmt.Errorf("wsbridge: start: %w", err)
	}

	logging.Log().Info("running, press ctrl-c to stop")
	<-ctx.Done()

	logging.Log().Info("shutting down")
	h.Shutdown()

	return nil
}
