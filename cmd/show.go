package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/highlight"
	"github.com/chriserin/zgr/internal/lexer"
	"github.com/chriserin/zgr/internal/parser"
	"github.com/chriserin/zgr/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a scenario and its Background by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, cfg config.Config, rawID string) error {
	rawID = strings.TrimPrefix(rawID, "#")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scenario ID: %s", rawID)
	}

	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var name, content, filePath, feature string
	err = sqlDB.QueryRow(`
		SELECT s.name, s.content, f.file_path, f.name
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		WHERE s.id = ?
	`, id).Scan(&name, &content, &filePath, &feature)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("scenario %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("querying scenario %d: %w", id, err)
	}

	// The file on disk wins over the index when it is still readable.
	var background string
	if data, err := readDocument(cfg, filePath); err == nil {
		pf := parser.ParseFile(filePath, data)
		feature = pf.Name
		for _, sc := range pf.Scenarios {
			if sc.Name == name {
				content = sc.Content
				break
			}
		}
		background = extractBackground(string(data))
	} else {
		slog.Debug("showing indexed content", "path", filePath, "error", err)
	}

	ui.ShowHeader(w, id, relativeTo(cfg.Dir, filePath), feature)

	kw := keywords(cfg)
	if background != "" {
		fmt.Fprintln(w)
		if err := renderDocument(w, background, kw); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return renderDocument(w, content, kw)
}

func renderDocument(w io.Writer, text string, kw lexer.KeywordSet) error {
	if err := highlight.Render(w, text, lexer.Tokenize(text, kw)); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(w)
	}
	return nil
}

// extractBackground returns the top-level Background: block of content,
// without trailing blank or comment lines.
func extractBackground(content string) string {
	var bgLines []string
	inBackground := false

	for line := range strings.Lines(content) {
		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(line)
		topLevel := trimmed != "" && !strings.HasPrefix(trimmed, "#") && line == strings.TrimLeft(line, " \t")

		if topLevel {
			if inBackground {
				break
			}
			inBackground = strings.HasPrefix(trimmed, "Background:")
		}
		if inBackground {
			bgLines = append(bgLines, line)
		}
	}

	for len(bgLines) > 0 {
		t := strings.TrimSpace(bgLines[len(bgLines)-1])
		if t != "" && !strings.HasPrefix(t, "#") {
			break
		}
		bgLines = bgLines[:len(bgLines)-1]
	}
	return strings.Join(bgLines, "\n")
}
