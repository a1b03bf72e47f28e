// Package pipeline runs a collection as a sequence of steps.
//
// A run is collected from the portal, then persisted as a JSON snapshot,
// a CSV file, optionally an XLSX workbook, and optionally recorded in the
// history database. Each stage is a Step that receives the model.Run and
// fills in its part of it.
//
// Steps execute strictly in order and the pipeline stops at the first
// failing step, so a failed collection never produces output files.
package pipeline
