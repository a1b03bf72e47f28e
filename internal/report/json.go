package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/nanumcorp/internal/model"
)

// JSONWriter outputs the aggregate result as a JSON snapshot.
// The snapshot has exactly two members, "total" and "corps". HTML
// characters in corporation names are written as-is.
type JSONWriter struct {
	baseWriter

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string. Empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// Output is compact unless an indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result. No trailing newline is written.
func (w *JSONWriter) Write(result *model.AggregateResult) (int, error) {
	if result == nil {
		result = model.NewAggregateResult()
	}
	if result.Corps == nil {
		result = &model.AggregateResult{Total: result.Total, Corps: []model.Corporation{}}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indentPrefix != "" || w.indentString != "" {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	if err := enc.Encode(result); err != nil {
		return 0, err
	}

	return w.output.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
