// Package root contains the root command for the application
package root

import (
	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/config"
	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/fileutils"
	"fjacquet/camt-export/internal/logging"
	"fjacquet/camt-export/internal/refcode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-export",
		Short: "A CLI tool to convert CAMT.052/053/054 XML files to normalized CSV.",
		Long: `camt-export converts ISO 20022 bank-to-customer XML files (camt.052
account reports, camt.053 statements, camt.054 notifications) into flat,
normalized CSV rows with running balances and stable row fingerprint input.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to camt-export!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			// Flags override the config file and environment.
			if LogLevel != "" {
				cfg.Log.Level = LogLevel
			}
			if LogFormat != "" {
				cfg.Log.Format = LogFormat
			}
			Cfg = cfg

			Log = logging.Configure(cfg.Log.Level, cfg.Log.Format)

			camtparser.SetStrictAmounts(cfg.Parser.StrictAmounts)

			// Fan the configured logger out to every package.
			camtparser.SetLogger(Log)
			export.SetLogger(Log)
			currencyutils.SetLogger(Log)
			refcode.SetLogger(Log)
			fileutils.SetLogger(Log)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific batch command flags
	InputDir  string
	OutputDir string

	// Logging overrides
	LogLevel  string
	LogFormat string
)

// ExportOptions returns the export options from the loaded configuration,
// falling back to the defaults before PersistentPreRun has run.
func ExportOptions() export.Options {
	if Cfg == nil {
		return export.DefaultOptions()
	}
	return Cfg.ExportOptions()
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Override log format (text, json)")
}
