// Package checker inspects a snapshot written by a previous collection.
//
// It answers a single question: has a collection finished, and what did it
// produce? A missing snapshot file is not an error; it means no run has
// completed yet. The checker never modifies the snapshot.
package checker
