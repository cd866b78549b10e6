package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/complete"
	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/db"
	"github.com/chriserin/zgr/internal/structure"
	"github.com/chriserin/zgr/internal/ui"
)

var (
	completeOffset int
	projectFlag    bool
)

var completeCmd = &cobra.Command{
	Use:   "complete <file>",
	Short: "Print completion suggestions for a byte offset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunComplete(cmd.OutOrStdout(), cfg, args[0], completeOffset, projectFlag)
	},
}

func init() {
	completeCmd.Flags().IntVar(&completeOffset, "offset", 0, "Byte offset of the cursor")
	completeCmd.Flags().BoolVar(&projectFlag, "project", false, "Also suggest statements indexed from other files")
	rootCmd.AddCommand(completeCmd)
}

// RunComplete prints one suggestion per line: text, detail and caret offset
// separated by tabs.
func RunComplete(w io.Writer, cfg config.Config, path string, offset int, project bool) error {
	data, err := readDocument(cfg, path)
	if err != nil {
		return err
	}
	if err := checkOffset(data, offset); err != nil {
		return err
	}
	text := string(data)

	var extra map[structure.Keyword][]string
	if section := structure.Section(text, offset); project && section.IsStep() {
		sqlDB, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		templates, err := db.Statements(sqlDB, section)
		if err != nil {
			return err
		}
		extra = map[structure.Keyword][]string{section: templates}
	}

	for _, s := range complete.Complete(text, offset, extra) {
		ui.SuggestionLine(w, s)
	}
	return nil
}
