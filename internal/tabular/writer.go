package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trufl/Compile-Lists/internal/dataset"
)

// Save writes a dataset as delimited text: a header row of column names,
// one data row per record, missing values serialized as empty fields.
// Row and column order are preserved as given. Parent directories are
// created as needed.
func Save(ds *dataset.Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := csv.NewWriter(f)

	if err := writer.Write(ds.Columns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			fields[i] = row[col].Text()
		}

		if err := writer.Write(fields); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
