// Package report writes collection results and snapshot status.
//
// This package contains writers for different output formats:
//   - JSONWriter: the {"total", "corps"} snapshot
//   - CSVWriter: a spreadsheet-friendly table of the records
//   - XLSX export through SaveXLSX
//   - StatusWriter and StatusMarkdownWriter: the state of a snapshot as
//     reported by the checker package
//
// SaveJSON, SaveCSV and SaveXLSX create the output directory when needed and
// overwrite existing files. Every write completes or fails before returning.
package report
