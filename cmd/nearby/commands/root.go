package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"nearby/internal/app"
)

var (
	configPath   string
	directoryURL string
	logLevel     string
	timeout      time.Duration
	appCtx       *app.Wire
)

// Execute runs the root command.
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "nearby",
		Short:        "Exchange discovery tokens and range with a nearby peer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg, cmd.ErrOrStderr())
			return err
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&directoryURL, "directory", "", "directory base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per request timeout (overrides config)")

	root.AddCommand(tokenCmd(), publishCmd(), fetchCmd(), rangeCmd())
	return root
}

// loadConfig reads --config if given, then applies flags set on the command line.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(configPath); err != nil {
			return app.Config{}, err
		}
	} else if v := os.Getenv("NEARBY_CONFIG"); v != "" {
		var err error
		if cfg, err = app.LoadConfig(v); err != nil {
			return app.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.DirectoryURL = directoryURL
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = timeout
	}
	return cfg, nil
}
