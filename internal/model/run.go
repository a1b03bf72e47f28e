package model

import "time"

// Run carries the state of one collect invocation through the pipeline.
// Each step reads what earlier steps produced and fills in its own part.
type Run struct {
	// Criteria are the filters used for every page of the run.
	Criteria SearchCriteria

	// MaxPages limits the number of pages fetched. Zero or less means no limit.
	MaxPages int

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when collection finished. Zero until then.
	FinishedAt time.Time

	// Result is the aggregate produced by the collect step.
	Result *AggregateResult

	// JSONPath is the path of the written JSON snapshot.
	JSONPath string

	// CSVPath is the path of the written CSV file. Empty when no records
	// were collected.
	CSVPath string

	// XLSXPath is the path of the written workbook, if one was requested.
	XLSXPath string

	// Digest is the hex SHA3-256 digest of the JSON snapshot, set when the
	// run is recorded in the history database.
	Digest string

	// HistoryID is the history database row id, set when the run is recorded.
	HistoryID int64

	// PerformedSteps lists the pipeline steps that completed, in order.
	PerformedSteps []string
}

// NewRun creates a Run for the given criteria.
func NewRun(criteria SearchCriteria, maxPages int) *Run {
	return &Run{
		Criteria:  criteria,
		MaxPages:  maxPages,
		StartedAt: time.Now(),
	}
}

// Elapsed returns the collection duration, or the time since the start if
// collection has not finished.
func (r *Run) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
