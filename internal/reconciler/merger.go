package reconciler

import (
	"github.com/trufl/Compile-Lists/internal/dataset"
)

// Merger appends secondary-source records not already represented in the
// normalized dataset, reshaped to the normalized column layout.
type Merger struct{}

// NewMerger creates a new merger instance.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge reconciles the secondary dataset against the normalized one.
//
// The column mapping (secondary name → target name) is applied first.
// Secondary rows with a missing email are dropped before matching. A row is
// considered matched, and excluded, when its vin appears among the normalized
// vin values AND its email appears among the normalized email values. The two
// membership tests are independent: the vin and email may come from different
// normalized rows. This mirrors the upstream behavior exactly and is
// deliberately not a joint (vin, email) pair test.
//
// Unmatched rows are reshaped to the normalized schema and appended after
// all normalized rows, which pass through unaltered and in order.
//
// Returns a SchemaError when either dataset lacks a vin or email column
// (for the secondary side, after mapping). Neither input is mutated.
func (m *Merger) Merge(normalized, secondary *dataset.Dataset, mapping map[string]string) (*dataset.Dataset, error) {
	sec := secondary.Clone()
	sec.Rename(mapping)

	if err := sec.RequireColumns(ColumnVIN, ColumnEmail); err != nil {
		return nil, err
	}

	if err := normalized.RequireColumns(ColumnVIN, ColumnEmail); err != nil {
		return nil, err
	}

	vins := normalized.ValueSet(ColumnVIN)
	emails := normalized.ValueSet(ColumnEmail)

	out := dataset.New(normalized.Columns)
	for _, row := range normalized.Rows {
		out.Append(row.Clone())
	}

	for _, row := range sec.Rows {
		email := row[ColumnEmail]
		if email.Missing() {
			continue
		}

		vin := row[ColumnVIN]

		matched := vin.Present() && vins[vin.Text()] && emails[email.Text()]
		if matched {
			continue
		}

		reshaped := make(dataset.Record, len(out.Columns))
		for _, col := range out.Columns {
			if val, ok := row[col]; ok {
				reshaped[col] = val
			}
		}
		out.Append(reshaped)
	}

	return out, nil
}
