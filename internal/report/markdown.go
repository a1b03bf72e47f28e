package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/nanumcorp/internal/checker"
)

// uncategorized labels records without a business category.
const uncategorized = "(none)"

// StatusMarkdownWriter outputs a snapshot status in Markdown format,
// with a table of business categories and a mermaid pie chart.
type StatusMarkdownWriter struct {
	baseWriter
}

// NewStatusMarkdownWriter creates a StatusMarkdownWriter that outputs to
// the given writer.
func NewStatusMarkdownWriter(output io.Writer) *StatusMarkdownWriter {
	return &StatusMarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteStatus outputs the status in Markdown format.
func (w *StatusMarkdownWriter) WriteStatus(status *checker.Status) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Registry Snapshot Status")
	md.PlainText("")

	if !status.Exists {
		md.Warningf("Collection has not completed yet. `%s` was not found.", status.Path)
		md.PlainText("")
		md.PlainText("Check whether the collector is still running: `" + ProcessHint + "`")
		return len(md.String()), md.Build()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Snapshot", "`" + status.Path + "`"},
			{"Written", status.ModTime.Format("2006-01-02 15:04:05 MST")},
			{"Total", strconv.Itoa(status.Total)},
			{"Corporations", strconv.Itoa(status.Collected)},
			{"File Size", strconv.FormatFloat(status.SizeMB(), 'f', 2, 64) + " MB"},
		},
	})
	md.PlainText("")

	if status.Total != status.Collected {
		md.Note(fmt.Sprintf("The recorded total (%d) differs from the number of corporations (%d).",
			status.Total, status.Collected))
		md.PlainText("")
	}

	w.writeCategories(md, status)

	return len(md.String()), md.Build()
}

// categoryCount is one row of the category breakdown.
type categoryCount struct {
	label string
	count int
}

// sortedCategories returns categories by descending count, then label.
func sortedCategories(counts map[string]int) []categoryCount {
	rows := make([]categoryCount, 0, len(counts))
	for label, count := range counts {
		if label == "" {
			label = uncategorized
		}
		rows = append(rows, categoryCount{label: label, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})
	return rows
}

// writeCategories writes the business category table and pie chart.
func (w *StatusMarkdownWriter) writeCategories(md *markdown.Markdown, status *checker.Status) {
	if len(status.Categories) == 0 {
		return
	}

	md.H2("Business Categories")
	md.PlainText("")

	rows := sortedCategories(status.Categories)
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.label, strconv.Itoa(r.count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   table,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Corporations by Business Category"),
		piechart.WithShowData(true),
	)
	for _, r := range rows {
		chart.LabelAndIntValue(r.label, uint64(r.count)) //nolint:gosec // counts are non-negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
