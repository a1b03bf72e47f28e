package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/nanumcorp/internal/model"
)

// SaveJSON writes result as a pretty-printed snapshot to dir/name.
// The directory is created with its parents if needed and an existing file
// is overwritten. An empty name selects DefaultJSONFileName.
// Returns the path of the written file.
func SaveJSON(dir, name string, result *model.AggregateResult) (string, error) {
	if name == "" {
		name = DefaultJSONFileName
	}

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(result); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return writeFile(dir, name, buf.Bytes())
}

// SaveCSV writes corps as CSV to dir/name.
// When corps is empty nothing is created and SaveCSV returns an empty path
// and a nil error. An empty name selects DefaultCSVFileName.
func SaveCSV(dir, name string, corps []model.Corporation, opts ...TableOption) (string, error) {
	if len(corps) == 0 {
		return "", nil
	}
	if name == "" {
		name = DefaultCSVFileName
	}

	var buf bytes.Buffer
	if _, err := NewCSVWriter(&buf, opts...).Write(corps); err != nil {
		return "", fmt.Errorf("failed to encode CSV: %w", err)
	}

	return writeFile(dir, name, buf.Bytes())
}

// SaveXLSX writes corps as an XLSX workbook to dir/name.
// When corps is empty nothing is created and SaveXLSX returns an empty path
// and a nil error. An empty name selects DefaultXLSXFileName.
func SaveXLSX(dir, name string, corps []model.Corporation, opts ...TableOption) (string, error) {
	if len(corps) == 0 {
		return "", nil
	}
	if name == "" {
		name = DefaultXLSXFileName
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := newWorkbook(corps, opts...)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// writeFile creates dir if needed and writes data to dir/name.
func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
