package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/complete"
	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/structure"
)

var statementsCmd = &cobra.Command{
	Use:   "statements <file> <Given|When|Then>",
	Short: "Print the statement templates used under a keyword",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatements(cmd.OutOrStdout(), cfg, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(statementsCmd)
}

func RunStatements(w io.Writer, cfg config.Config, path, keyword string) error {
	k := structure.ParseKeyword(keyword)
	if !k.IsStep() {
		return fmt.Errorf("keyword must be Given, When or Then, got %q", keyword)
	}
	data, err := readDocument(cfg, path)
	if err != nil {
		return err
	}
	for _, s := range complete.Statements(string(data), k) {
		fmt.Fprintln(w, s)
	}
	return nil
}
