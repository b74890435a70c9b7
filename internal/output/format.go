// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"itemsync/internal/service"
)

const (
	// TodoHeader titles the incomplete section.
	TodoHeader = "TO DO"

	// DoneHeader titles the complete section.
	DoneHeader = "DONE"

	markTodo = "[ ]"
	markDone = "[x]"
)

// Styles renders section headers and marks for one writer. Color and
// attributes are dropped automatically when w is not a terminal.
type Styles struct {
	header lipgloss.Style
	done   lipgloss.Style
	muted  lipgloss.Style
}

// NewStyles creates styles bound to w's terminal capabilities.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		done:   r.NewStyle().Foreground(lipgloss.Color("2")),
		muted:  r.NewStyle().Faint(true),
	}
}

// FormatSections prints the incomplete and complete groups with positional
// references (t1.., d1..) usable as item refs.
// Format per line: "  {ref:<4} {mark} {NAME}  #{id}\n"
func FormatSections(w io.Writer, incomplete, complete []service.Item) {
	st := NewStyles(w)

	fmt.Fprintln(w, st.header.Render(TodoHeader))
	for i, item := range incomplete {
		ref := fmt.Sprintf("t%d", i+1)
		fmt.Fprintf(w, "  %-4s %s %s  %s\n", ref, markTodo, normalizeName(item.Name), st.muted.Render(fmt.Sprintf("#%d", item.ID)))
	}

	fmt.Fprintln(w, st.header.Render(DoneHeader))
	for i, item := range complete {
		ref := fmt.Sprintf("d%d", i+1)
		fmt.Fprintf(w, "  %-4s %s %s  %s\n", ref, st.done.Render(markDone), normalizeName(item.Name), st.muted.Render(fmt.Sprintf("#%d", item.ID)))
	}
}

// FormatItem prints one item's details.
func FormatItem(w io.Writer, item service.Item) {
	status := "to do"
	if item.IsCompleted {
		status = "done"
	}
	fmt.Fprintf(w, "id:     %d\n", item.ID)
	fmt.Fprintf(w, "name:   %s\n", normalizeName(item.Name))
	fmt.Fprintf(w, "status: %s\n", status)
	fmt.Fprintf(w, "image:  %s\n", orNone(item.ImageURL))
	fmt.Fprintln(w, "memo:")
	if strings.TrimSpace(item.Memo) == "" {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, line := range strings.Split(strings.ReplaceAll(item.Memo, "\r\n", "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// normalizeName normalizes an item name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
