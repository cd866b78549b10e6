package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/logging"
)

var (
	cfg       = config.DefaultConfig()
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:          "zgr",
	Short:        "zgr — tooling for Bjoern feature files",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFromFile(config.FileName)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if logFormat != "" {
			loaded.Log.Format = logFormat
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
