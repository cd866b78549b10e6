package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/lexer"
	"github.com/chriserin/zgr/internal/parser"
	"github.com/chriserin/zgr/internal/token"
	"github.com/chriserin/zgr/internal/ui"
)

// ErrCheckFailed is returned when any checked file has problems.
var ErrCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Report parse errors and invalid keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), cfg, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// RunCheck checks paths, or every feature file when none are given.
func RunCheck(w io.Writer, cfg config.Config, paths []string) error {
	if len(paths) == 0 {
		var err error
		if paths, err = documents(cfg); err != nil {
			return err
		}
	}

	kw := keywords(cfg)
	problems := 0
	for _, path := range paths {
		data, err := readDocument(cfg, path)
		if err != nil {
			return err
		}
		errs := checkDocument(path, data, kw)
		for _, e := range errs {
			ui.ErrorLine(w, path, e.Line, e.Message)
		}
		problems += len(errs)
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d problems in %d files", ErrCheckFailed, problems, len(paths))
	}
	return nil
}

// checkDocument merges parse errors with keys the configured keyword set
// rejects. A key reported by both is reported once.
func checkDocument(path string, data []byte, kw lexer.KeywordSet) []parser.ParseError {
	_, errs := parser.Parse(path, data)

	reported := make(map[int]bool)
	for _, e := range errs {
		reported[e.Line] = true
	}

	buf := string(data)
	line := 1
	for _, t := range lexer.Tokenize(buf, kw) {
		switch t.Kind {
		case token.EOL:
			line++
		case token.InvalidKeyword:
			if !reported[line] {
				reported[line] = true
				errs = append(errs, parser.ParseError{
					Line:    line,
					Message: fmt.Sprintf("invalid keyword %q", lexer.KeyName(t.Text(buf))),
				})
			}
		}
	}
	slices.SortStableFunc(errs, func(a, b parser.ParseError) int { return a.Line - b.Line })
	return errs
}
