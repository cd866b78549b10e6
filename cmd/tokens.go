package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/lexer"
	"github.com/chriserin/zgr/internal/token"
)

var checkFlag bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the layered token stream of a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTokens(cmd.OutOrStdout(), cfg, args[0], checkFlag)
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&checkFlag, "check", false, "Verify the tokens cover the file without gaps or overlaps")
	rootCmd.AddCommand(tokensCmd)
}

func RunTokens(w io.Writer, cfg config.Config, path string, check bool) error {
	data, err := readDocument(cfg, path)
	if err != nil {
		return err
	}
	buf := string(data)
	tokens := lexer.Tokenize(buf, keywords(cfg))

	for _, t := range tokens {
		fmt.Fprintf(w, "%-16s %5d %5d  %q\n", t.Kind, t.Start, t.End, t.Text(buf))
	}

	if check {
		if err := token.CheckCoverage(tokens, 0, len(buf)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(w, "%d tokens cover %d bytes\n", len(tokens), len(buf))
	}
	return nil
}
