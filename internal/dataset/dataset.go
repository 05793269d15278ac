// Package dataset defines the in-memory tabular model shared by the
// reconciliation pipeline stages: nullable cell values, records, and ordered
// column sets with canonicalized names.
package dataset

import (
	"fmt"
	"strings"
)

// Value is a single cell: either present text or explicitly missing.
// The zero Value is missing. An empty string is a present value and is
// never conflated with missing.
type Value struct {
	text    string
	present bool
}

// String creates a present Value holding s.
func String(s string) Value {
	return Value{text: s, present: true}
}

// Present reports whether the value holds text.
func (v Value) Present() bool {
	return v.present
}

// Missing reports whether the value is absent.
func (v Value) Missing() bool {
	return !v.present
}

// Text returns the held text, or "" when the value is missing.
func (v Value) Text() string {
	return v.text
}

// Canonicalize normalizes a column name for lookup: trimmed and lower-cased.
// It is applied once, when a Dataset is constructed; all later logic
// addresses columns by canonical name only.
func Canonicalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Record maps canonical column names to cell values. Columns absent from the
// map read as missing.
type Record map[string]Value

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for col, val := range r {
		out[col] = val
	}

	return out
}

// SchemaError reports a required identity column that is absent from a
// dataset's schema.
type SchemaError struct {
	Column string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required %q column", e.Column)
}

// Dataset is an ordered sequence of records sharing an ordered set of
// canonical column names.
type Dataset struct {
	Columns []string
	Rows    []Record
}

// New creates an empty dataset with the given columns, canonicalizing each
// name. Callers supply raw header names straight from the source.
func New(columns []string) *Dataset {
	canonical := make([]string, len(columns))
	for i, col := range columns {
		canonical[i] = Canonicalize(col)
	}

	return &Dataset{Columns: canonical}
}

// HasColumn reports whether the canonical form of name is in the schema.
func (d *Dataset) HasColumn(name string) bool {
	name = Canonicalize(name)
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}

	return false
}

// RequireColumns returns a SchemaError naming the first of the given columns
// absent from the schema, or nil when all are present.
func (d *Dataset) RequireColumns(names ...string) error {
	for _, name := range names {
		if !d.HasColumn(name) {
			return &SchemaError{Column: Canonicalize(name)}
		}
	}

	return nil
}

// Append adds a record to the end of the dataset.
func (d *Dataset) Append(r Record) {
	d.Rows = append(d.Rows, r)
}

// Clone returns a deep copy: independent column slice and records.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Record, len(d.Rows)),
	}
	for i, row := range d.Rows {
		out.Rows[i] = row.Clone()
	}

	return out
}

// DropColumn removes a column from the schema and from every record.
func (d *Dataset) DropColumn(name string) {
	name = Canonicalize(name)

	kept := d.Columns[:0]
	for _, col := range d.Columns {
		if col != name {
			kept = append(kept, col)
		}
	}
	d.Columns = kept

	for _, row := range d.Rows {
		delete(row, name)
	}
}

// Rename applies a column mapping in place. Keys and targets are
// canonicalized; unmapped columns keep their name.
func (d *Dataset) Rename(mapping map[string]string) {
	if len(mapping) == 0 {
		return
	}

	canonical := make(map[string]string, len(mapping))
	for from, to := range mapping {
		canonical[Canonicalize(from)] = Canonicalize(to)
	}

	for i, col := range d.Columns {
		if to, ok := canonical[col]; ok {
			d.Columns[i] = to
		}
	}

	for _, row := range d.Rows {
		for from, to := range canonical {
			if val, ok := row[from]; ok {
				delete(row, from)
				row[to] = val
			}
		}
	}
}

// Reindex returns a new dataset conforming to the target column set: values
// are kept for columns present in both schemas, target columns absent from
// this dataset read as missing, and columns outside the target are dropped.
func (d *Dataset) Reindex(target []string) *Dataset {
	out := New(target)
	for _, row := range d.Rows {
		reshaped := make(Record, len(out.Columns))
		for _, col := range out.Columns {
			if val, ok := row[col]; ok {
				reshaped[col] = val
			}
		}
		out.Append(reshaped)
	}

	return out
}

// ValueSet collects the distinct present values of a column. Missing cells
// contribute nothing.
func (d *Dataset) ValueSet(name string) map[string]bool {
	name = Canonicalize(name)

	set := make(map[string]bool)
	for _, row := range d.Rows {
		if val := row[name]; val.Present() {
			set[val.Text()] = true
		}
	}

	return set
}
