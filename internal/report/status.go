package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/nanumcorp/internal/checker"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProcessHint is the command suggested when no snapshot exists yet.
const ProcessHint = "ps aux | grep nanumcorp"

// StatusWriter outputs a snapshot status as plain text for the terminal.
type StatusWriter struct {
	baseWriter

	// printer formats counts with thousands separators.
	printer *message.Printer
}

// NewStatusWriter creates a StatusWriter that outputs to the given writer.
func NewStatusWriter(output io.Writer) *StatusWriter {
	return &StatusWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// WriteStatus outputs the status.
func (w *StatusWriter) WriteStatus(status *checker.Status) (int, error) {
	var sb strings.Builder

	if !status.Exists {
		sb.WriteString("Collection has not completed yet.\n")
		fmt.Fprintf(&sb, "Snapshot not found: %s\n", status.Path)
		fmt.Fprintf(&sb, "Check whether the collector is still running: %s\n", ProcessHint)
		return io.WriteString(w.output, sb.String())
	}

	sb.WriteString("✓ Collection completed\n")
	sb.WriteString(w.printer.Sprintf("Total: %d\n", status.Total))
	sb.WriteString(w.printer.Sprintf("Corporations: %d\n", status.Collected))
	sb.WriteString(w.printer.Sprintf("File size: %.2f MB (%d bytes)\n", status.SizeMB(), status.SizeBytes))
	fmt.Fprintf(&sb, "Written: %s\n", status.ModTime.Format("2006-01-02 15:04:05 MST"))

	if status.Total != status.Collected {
		sb.WriteString(w.printer.Sprintf("Note: recorded total and corporations differ by %d\n", status.Total-status.Collected))
	}

	return io.WriteString(w.output, sb.String())
}
