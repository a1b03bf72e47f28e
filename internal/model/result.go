package model

// PageResult holds the records parsed from one listing page.
type PageResult struct {
	// Total is the registry-reported grand total shown on the page.
	// Zero when the page carried no readable total.
	Total int `json:"total"`

	// PageIndex is the page index found in the response body.
	// It is advisory only: the portal does not reliably echo the page.
	PageIndex int `json:"pageIndex"`

	// Corps holds the records in document order.
	Corps []Corporation `json:"corps"`
}

// AggregateResult holds every record collected during a run.
//
// Only Total and Corps are serialized; the snapshot format is exactly
// {"total": n, "corps": [...]}.
type AggregateResult struct {
	// Total is the number of records actually collected. It can differ from
	// ReportedTotal when the listing changes during a run or when the run
	// stops at a page limit.
	Total int `json:"total"`

	// Corps holds the records of all pages concatenated in page order.
	Corps []Corporation `json:"corps"`

	// ReportedTotal is the registry total reported on the first page.
	ReportedTotal int `json:"-"`

	// Pages is the number of pages fetched.
	Pages int `json:"-"`
}

// NewAggregateResult returns an empty result ready for appending.
func NewAggregateResult() *AggregateResult {
	return &AggregateResult{
		Corps: make([]Corporation, 0),
	}
}

// Append adds the records of one page and updates Total.
func (r *AggregateResult) Append(corps ...Corporation) {
	r.Corps = append(r.Corps, corps...)
	r.Total = len(r.Corps)
}

// CountBy counts records by the value stored under key. Records without
// the key are counted under the empty string.
func (r *AggregateResult) CountBy(key string) map[string]int {
	counts := make(map[string]int)
	for _, c := range r.Corps {
		v, _ := c.Value(key)
		counts[v]++
	}
	return counts
}
