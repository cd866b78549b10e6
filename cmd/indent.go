package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/structure"
)

var offsetFlag int

var indentCmd = &cobra.Command{
	Use:   "indent <file>",
	Short: "Print the indentation for a line break at a byte offset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunIndent(cmd.OutOrStdout(), cfg, args[0], offsetFlag)
	},
}

func init() {
	indentCmd.Flags().IntVar(&offsetFlag, "offset", 0, "Byte offset of the cursor")
	rootCmd.AddCommand(indentCmd)
}

// RunIndent prints the indentation, quoted, that a new line opened at offset
// should receive.
func RunIndent(w io.Writer, cfg config.Config, path string, offset int) error {
	data, err := readDocument(cfg, path)
	if err != nil {
		return err
	}
	if err := checkOffset(data, offset); err != nil {
		return err
	}
	fmt.Fprintln(w, strconv.Quote(structure.LineIndent(string(data), offset)))
	return nil
}
