package checker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/nao1215/nanumcorp/internal/model"
)

// bytesPerMB converts byte counts to megabytes (1024 * 1024).
const bytesPerMB = 1024 * 1024

// Status describes a snapshot file.
type Status struct {
	// Path is the snapshot path that was inspected.
	Path string

	// Exists reports whether the snapshot file is present.
	// All other fields except Path are zero when it is false.
	Exists bool

	// Total is the total recorded in the snapshot.
	Total int

	// Collected is the number of records in the snapshot.
	Collected int

	// SizeBytes is the size of the snapshot file.
	SizeBytes int64

	// ModTime is when the snapshot was last written.
	ModTime time.Time

	// Categories counts records per business category.
	Categories map[string]int
}

// SizeMB returns the file size in megabytes.
func (s *Status) SizeMB() float64 {
	return float64(s.SizeBytes) / bytesPerMB
}

// snapshot is the on-disk shape written by the collector.
type snapshot struct {
	Total int                 `json:"total"`
	Corps []model.Corporation `json:"corps"`
}

// Check inspects the snapshot at path.
// A missing file yields a Status with Exists set to false and a nil error.
// A file that is not a valid snapshot yields an error.
func Check(path string) (*Status, error) {
	status := &Status{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return status, nil
		}
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided snapshot path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	result := model.NewAggregateResult()
	result.Append(snap.Corps...)

	status.Exists = true
	status.Total = snap.Total
	status.Collected = len(snap.Corps)
	status.SizeBytes = info.Size()
	status.ModTime = info.ModTime()
	status.Categories = result.CountBy(model.KeyBusinessCategory)

	return status, nil
}
