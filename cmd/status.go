package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/structure"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, cfg config.Config) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var files, broken, scenarios, statements int
	err = sqlDB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM files),
			(SELECT COUNT(*) FROM files WHERE error_count > 0),
			(SELECT COUNT(*) FROM scenarios),
			(SELECT COUNT(*) FROM statements)
	`).Scan(&files, &broken, &scenarios, &statements)
	if err != nil {
		return fmt.Errorf("counting index: %w", err)
	}

	fmt.Fprintf(w, "Files: %d\n", files)
	if broken > 0 {
		fmt.Fprintf(w, "  with errors: %d\n", broken)
	}
	fmt.Fprintf(w, "Scenarios: %d\n", scenarios)
	fmt.Fprintf(w, "Statements: %d\n", statements)
	if statements == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`SELECT keyword, COUNT(*) FROM statements GROUP BY keyword`)
	if err != nil {
		return fmt.Errorf("querying statement counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var keyword string
		var cnt int
		if err := rows.Scan(&keyword, &cnt); err != nil {
			return fmt.Errorf("scanning statement row: %w", err)
		}
		counts[keyword] = cnt
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, k := range []structure.Keyword{structure.Given, structure.When, structure.Then} {
		if cnt := counts[k.String()]; cnt > 0 {
			fmt.Fprintf(w, "  %s: %d\n", k, cnt)
		}
	}
	return nil
}
