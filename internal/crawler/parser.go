package crawler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/nanumcorp/internal/model"
	"golang.org/x/net/html"
)

// Selectors for the listing fragment.
const (
	selectorTotals     = ".totals"
	selectorRows       = "table.tbl_list_tax tbody tr"
	selectorCells      = "td"
	selectorHidden     = `input[type="hidden"]`
	selectorSummaryPop = ".sumryPop"
)

// minCells is the number of cells a row needs to become a record.
const minCells = 4

// summaryCell is the index of the disclosure column.
const summaryCell = 4

var (
	// totalPattern matches a comma-grouped count such as "14,754".
	totalPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*`)

	// pageIndexPattern finds the page index anywhere in the raw fragment.
	pageIndexPattern = regexp.MustCompile(`pageIndex=(\d+)`)
)

// Parse converts one listing fragment into a PageResult.
//
// Extraction is best-effort: a missing totals element yields a total of 0,
// rows with fewer than four cells are skipped and missing cells become
// empty strings. Only a failure to parse the markup itself is an error.
func Parse(text string) (*model.PageResult, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	doc := goquery.NewDocumentFromNode(root)

	result := &model.PageResult{
		Total:     parseTotal(doc.Find(selectorTotals).First().Text()),
		PageIndex: parsePageIndex(text),
		Corps:     make([]model.Corporation, 0),
	}

	doc.Find(selectorRows).Each(func(_ int, row *goquery.Selection) {
		if corp, ok := parseRow(row); ok {
			result.Corps = append(result.Corps, corp)
		}
	})

	return result, nil
}

// parseRow extracts one record from a table row.
func parseRow(row *goquery.Selection) (model.Corporation, bool) {
	cells := row.Find(selectorCells)
	if cells.Length() < minCells {
		return model.Corporation{}, false
	}

	corp := model.Corporation{
		SeqNo:             cellText(cells, 0),
		Name:              cellText(cells, 1),
		BusinessCategory:  cellText(cells, 2),
		DonationGroupType: cellText(cells, 3),
	}

	row.Find(selectorHidden).Each(func(_ int, input *goquery.Selection) {
		class, _ := input.Attr("class")
		value, _ := input.Attr("value")
		corp.SetHidden(class, value)
	})

	if cells.Length() > summaryCell {
		trigger := cells.Eq(summaryCell).Find(selectorSummaryPop).First()
		if trigger.Length() > 0 {
			idx, _ := trigger.Attr("data-idx")
			corp.SetSummaryIdx(idx)
		}
	}

	return corp, true
}

// cellText returns the trimmed text of the i-th cell.
func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}

// parseTotal reads the first comma-grouped number in text, or 0.
func parseTotal(text string) int {
	m := totalPattern.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// parsePageIndex reads the first pageIndex=N in the raw fragment, or 1.
func parsePageIndex(text string) int {
	m := pageIndexPattern.FindStringSubmatch(text)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return n
}
