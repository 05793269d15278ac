// Package tabular loads and persists flat tabular files. Cell values stay
// opaque text end to end: nothing here infers numbers or dates, and an empty
// cell is loaded as an explicitly missing value.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/trufl/Compile-Lists/internal/dataset"
)

// UnsupportedFormatError reports a source file whose extension matches
// neither a delimited-text nor a spreadsheet format.
type UnsupportedFormatError struct {
	Ext string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: expected a CSV or Excel file", e.Ext)
}

// Load reads a tabular file into a dataset, dispatching on the file
// extension: .csv and .tsv as delimited text, .xlsx and .xlsm as spreadsheet
// workbooks (first sheet). Any other extension fails with an
// UnsupportedFormatError. Legacy binary .xls is not supported.
//
// The header row is canonicalized at load; data cells are kept verbatim,
// with empty cells loaded as missing.
func Load(path string) (*dataset.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadDelimited(path, ',')
	case ".tsv":
		return loadDelimited(path, '\t')
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

func loadDelimited(path string, comma rune) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	// Rows shorter or longer than the header are tolerated; short rows pad
	// with missing and surplus cells are ignored.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return fromRows(rows), nil
}

func loadWorkbook(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return fromRows(rows), nil
}

// fromRows builds a dataset from a header row plus data rows. Excel readers
// trim trailing empty cells, so each row is padded against the header by the
// zero (missing) Value simply being absent from the record.
func fromRows(rows [][]string) *dataset.Dataset {
	if len(rows) == 0 {
		return dataset.New(nil)
	}

	ds := dataset.New(rows[0])

	for _, cells := range rows[1:] {
		record := make(dataset.Record, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(cells) && cells[i] != "" {
				record[col] = dataset.String(cells[i])
			}
		}
		ds.Append(record)
	}

	return ds
}
