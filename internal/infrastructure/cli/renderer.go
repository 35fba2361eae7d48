package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/doeshing/copywriter-go/internal/domain"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

// RenderFailure prints the snapshot's error line.
func RenderFailure(out io.Writer, snap domain.Snapshot) {
	errorColor.Fprintln(out, snap.Error)
	if snap.ErrKind == domain.KindPersistence && snap.Result != "" {
		dimColor.Fprintln(out, "the generated copy was printed above but is not in history")
	}
}

// RenderCommitted prints a one-line summary of a saved entry.
func RenderCommitted(out io.Writer, entry *domain.HistoryEntry) {
	if entry == nil {
		return
	}
	successColor.Fprintf(out, "✓ saved #%d (%s, %s)\n", entry.ID, entry.Style, entry.Timestamp)
}

// RenderNotice prints a dim informational line.
func RenderNotice(out io.Writer, format string, args ...interface{}) {
	dimColor.Fprintln(out, fmt.Sprintf(format, args...))
}
