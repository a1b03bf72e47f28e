package report

import (
	"fmt"
	"io"

	"github.com/nao1215/nanumcorp/internal/model"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the worksheet the records are written to.
const xlsxSheet = "Sheet1"

// newWorkbook builds a workbook with one sheet holding corps: a header row
// followed by one row per record, in order. Column semantics follow the
// CSV export.
func newWorkbook(corps []model.Corporation, opts ...TableOption) (*excelize.File, error) {
	f := excelize.NewFile()

	// Stream writer keeps memory flat for the full registry.
	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	columns := Header(corps, opts...)
	if err := sw.SetRow("A1", toCells(columns)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, c := range corps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := sw.SetRow(cell, toCells(rowValues(c, columns))); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to flush worksheet: %w", err)
	}
	return f, nil
}

// WriteXLSX writes corps as an XLSX workbook to output.
// Nothing is written when corps is empty.
func WriteXLSX(output io.Writer, corps []model.Corporation, opts ...TableOption) (int64, error) {
	if len(corps) == 0 {
		return 0, nil
	}

	f, err := newWorkbook(corps, opts...)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.WriteTo(output)
}

// toCells converts strings to stream writer cell values. Values are kept
// as text so that registration numbers and dates are not reinterpreted.
func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
