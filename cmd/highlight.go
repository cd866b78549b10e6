package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Print a feature file with syntax highlighting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunHighlight(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(highlightCmd)
}

func RunHighlight(w io.Writer, cfg config.Config, path string) error {
	data, err := readDocument(cfg, path)
	if err != nil {
		return err
	}
	return renderDocument(w, string(data), keywords(cfg))
}
