// Package cli wires the flowlens commands: extract, types and serve.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/config"
)

const appName = "flowlens"

type rootOptions struct {
	configPath string
	logLevel   string
}

// Execute runs the flowlens command tree.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Inspect Apache NiFi flow-definition exports",
		Long:          "Flowlens reads a NiFi flow-definition JSON export, discovers every\nprocessor in it and produces normalized, security-masked summaries as\nCSV tables, Markdown reports and a REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override configured log level")

	cmd.AddCommand(extractCmd(opts))
	cmd.AddCommand(typesCmd(opts))
	cmd.AddCommand(serveCmd(opts))
	return cmd
}

// loadConfig resolves the effective config for a command invocation.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

func (o *rootOptions) setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
