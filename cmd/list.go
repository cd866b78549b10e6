package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/ui"
)

var fileFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexed scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), cfg, fileFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&fileFlag, "file", "", "Only list scenarios of files whose path contains this text")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	id       int64
	location string
	name     string
	line     int
}

func RunList(w io.Writer, cfg config.Config, fileFilter string) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT s.id, f.file_path, s.name, s.line
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.line
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.id, &filePath, &r.name, &r.line); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		if fileFilter != "" && !strings.Contains(filePath, fileFilter) {
			continue
		}
		r.location = relativeTo(cfg.Dir, filePath)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	idWidth, fileWidth := 0, 0
	for _, r := range results {
		idWidth = max(idWidth, len(fmt.Sprintf("#%d", r.id)))
		fileWidth = max(fileWidth, len(fmt.Sprintf("%s:%d", r.location, r.line)))
	}
	for _, r := range results {
		ui.ListRow(w, r.id, r.location, r.name, r.line, idWidth, fileWidth)
	}
	return nil
}

// relativeTo shortens path to its location under dir when it lies there.
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
