package report

import (
	"bytes"
	"io"
	"strings"

	"github.com/nao1215/nanumcorp/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tableOptions holds settings shared by the CSV and XLSX exports.
type tableOptions struct {
	// unionHeader builds the header from every record instead of the first.
	unionHeader bool

	// bom prefixes CSV output with a UTF-8 byte order mark.
	bom bool
}

// TableOption configures the CSV and XLSX exports.
type TableOption func(*tableOptions)

// WithUnionHeader builds the header from the keys of every record, in
// first-seen order. Without it the header is the key set of the first
// record, and keys that only appear in later records are dropped.
func WithUnionHeader() TableOption {
	return func(o *tableOptions) {
		o.unionHeader = true
	}
}

// WithBOM prefixes CSV output with a UTF-8 byte order mark. Spreadsheet
// tools use it to detect that the file is UTF-8. XLSX output ignores it.
func WithBOM() TableOption {
	return func(o *tableOptions) {
		o.bom = true
	}
}

func newTableOptions(opts []TableOption) tableOptions {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Header returns the column keys for corps.
func Header(corps []model.Corporation, opts ...TableOption) []string {
	return header(corps, newTableOptions(opts))
}

func header(corps []model.Corporation, o tableOptions) []string {
	if len(corps) == 0 {
		return nil
	}
	if !o.unionHeader {
		return corps[0].Keys()
	}

	seen := make(map[string]bool)
	keys := make([]string, 0, len(corps[0].Keys()))
	for _, c := range corps {
		for _, k := range c.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// rowValues returns the values of c for each header key. Missing keys
// yield empty strings.
func rowValues(c model.Corporation, columns []string) []string {
	values := make([]string, len(columns))
	for i, k := range columns {
		values[i], _ = c.Value(k)
	}
	return values
}

// CSVWriter outputs records as CSV.
//
// The header line is the comma-joined column keys without quoting. Every
// data field is wrapped in double quotes with embedded quotes doubled.
// Lines are separated by "\n" and the output has no trailing newline.
type CSVWriter struct {
	baseWriter
	opts tableOptions
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer, opts ...TableOption) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
		opts:       newTableOptions(opts),
	}
}

// Write outputs corps. Nothing is written when corps is empty.
func (w *CSVWriter) Write(corps []model.Corporation) (int, error) {
	if len(corps) == 0 {
		return 0, nil
	}

	columns := header(corps, w.opts)

	var buf bytes.Buffer
	buf.WriteString(strings.Join(columns, ","))
	for _, c := range corps {
		buf.WriteByte('\n')
		for i, v := range rowValues(c, columns) {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteField(v))
		}
	}

	if !w.opts.bom {
		return w.output.Write(buf.Bytes())
	}

	tw := transform.NewWriter(w.output, unicode.UTF8BOM.NewEncoder())
	n, err := tw.Write(buf.Bytes())
	if err != nil {
		return n, err
	}
	return n, tw.Close()
}

// quoteField wraps v in double quotes, doubling embedded quotes.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
