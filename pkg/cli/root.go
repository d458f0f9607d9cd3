// Package cli provides the postgirl command-line interface. The commands are
// a thin stand-in for the desktop app: they feed files through the same
// conversion coordinator the GUI uses.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xbklairith/postgirl-sub001/pkg/cliconfig"
	"github.com/xbklairith/postgirl-sub001/pkg/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootFlags struct {
	logLevel string
	logJSON  bool
}

var rootCmd = &cobra.Command{
	Use:               "postgirl",
	Short:             "Convert API collections between Postman, Insomnia, OpenAPI and curl",
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", cliconfig.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.logJSON, "log-json", false, "emit logs as JSON")
}

// applyConfig layers file and environment configuration under the flags:
// a flag the user did not set on the command line takes its value from the
// loaded config instead of the compiled-in default.
func applyConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}

	fromConfig := map[string]string{
		"log-level": cfg.LogLevel,
		"workspace": cfg.Workspace,
		"format":    cfg.Format,
	}
	for name, value := range fromConfig {
		if value == "" {
			continue
		}
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			if err := f.Value.Set(value); err != nil {
				return err
			}
		}
	}

	if f := cmd.Flags().Lookup("log-json"); f != nil && !f.Changed && cfg.LogJSON {
		if err := f.Value.Set("true"); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("json"); f != nil && !f.Changed && cfg.JSON {
		if err := f.Value.Set("true"); err != nil {
			return err
		}
	}

	return nil
}

// newLogger builds the logger configured by the persistent flags.
func newLogger() *slog.Logger {
	format := logging.FormatText
	if rootFlags.logJSON {
		format = logging.FormatJSON
	}
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(rootFlags.logLevel),
		Format: format,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
