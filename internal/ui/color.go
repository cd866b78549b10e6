package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/zgr/internal/complete"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle    = lipgloss.NewStyle().Faint(true)
	delStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func DelLine(w io.Writer, path string) {
	fmt.Fprintln(w, delStyle.Render("del")+"  "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}

// ErrorLine prints a parse error in the file:line: message form editors jump to.
func ErrorLine(w io.Writer, path string, line int, message string) {
	fmt.Fprintf(w, "%s:%d: %s\n", path, line, errStyle.Render(message))
}

// ListRow prints one scenario of the list, padded to the given column widths.
func ListRow(w io.Writer, id int64, fileName, name string, line int, idWidth, fileWidth int) {
	tag := fmt.Sprintf("#%d", id)
	pad := strings.Repeat(" ", max(idWidth-len(tag), 0))
	fmt.Fprintf(w, "%s%s  %-*s  %s\n",
		idStyle.Render(tag), pad,
		fileWidth, fmt.Sprintf("%s:%d", fileName, line),
		name)
}

func ShowHeader(w io.Writer, id int64, fileName, feature string) {
	fmt.Fprintf(w, "%s  %s  %s\n", idStyle.Render(fmt.Sprintf("#%d", id)), fileName, headerStyle.Render(feature))
}

func SuggestionLine(w io.Writer, s complete.Suggestion) {
	fmt.Fprintf(w, "%s\t%s\t%d\n", s.Text, detailStyle.Render(s.Detail), s.Caret)
}
