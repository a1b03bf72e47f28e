// Package model defines the data structures shared by the collector.
//
// This package contains the following main types:
//   - SearchCriteria: the filters and page index sent to the listing endpoint
//   - Corporation: one row of the public-benefit corporation registry
//   - PageResult: the records parsed from a single listing page
//   - AggregateResult: every record collected across all pages of a run
//   - Run: the state carried through the collect pipeline
//
// Models live in their own package so that crawler, report, checker and
// pipeline can share them without import cycles. AggregateResult and
// Corporation serialize to the snapshot JSON format written to disk.
package model
