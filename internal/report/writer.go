package report

import (
	"io"

	"github.com/nao1215/nanumcorp/internal/checker"
)

// Library default file names.
const (
	// DefaultJSONFileName is used by SaveJSON when no name is given.
	DefaultJSONFileName = "nanumkorea_corps.json"

	// DefaultCSVFileName is used by SaveCSV when no name is given.
	DefaultCSVFileName = "nanumkorea_corps.csv"

	// DefaultXLSXFileName is used by SaveXLSX when no name is given.
	DefaultXLSXFileName = "nanumkorea_corps.xlsx"
)

// Writer renders the status of a snapshot.
// Implementations write the status in various formats.
type Writer interface {
	// WriteStatus outputs the status to the configured destination.
	// Returns the number of bytes written and any error encountered.
	WriteStatus(status *checker.Status) (int, error)
}

// MultiWriter writes a status to multiple Writers.
// This is useful for printing to the terminal and saving a file at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteStatus outputs the status to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteStatus(status *checker.Status) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStatus(status)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
