// Package reconciler implements the two-stage contact record reconciliation:
// email fanout normalization of the main list, and the set-difference merge
// of secondary-source records into the normalized list.
package reconciler

import (
	"github.com/trufl/Compile-Lists/internal/dataset"
)

// Identity columns the pipeline keys on. Column names are canonical
// (trimmed, lower-cased) by the time datasets reach this package.
const (
	ColumnEmail  = "email"
	ColumnEmail2 = "email2"
	ColumnVIN    = "vin"
)

// Normalizer fans records carrying two email addresses out into separate
// rows, leaving every output row with at most one populated email.
type Normalizer struct{}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize transforms the raw main dataset into its normalized form.
//
// Per input row, in order: when both email and email2 are present the
// original row is emitted followed immediately by a copy with the two values
// swapped; when only email is present the row passes through unchanged; when
// only email2 is present its value moves into email and email2 is cleared;
// when neither is present the row is dropped. The email2 column is removed
// from the output schema afterwards.
//
// Returns a SchemaError when the input has no email column. Input rows are
// never mutated; every emitted row is a copy.
func (n *Normalizer) Normalize(raw *dataset.Dataset) (*dataset.Dataset, error) {
	if err := raw.RequireColumns(ColumnEmail); err != nil {
		return nil, err
	}

	hasSecondary := raw.HasColumn(ColumnEmail2)

	out := dataset.New(raw.Columns)

	for _, row := range raw.Rows {
		primary := row[ColumnEmail]

		var secondary dataset.Value
		if hasSecondary {
			secondary = row[ColumnEmail2]
		}

		switch {
		case primary.Present() && secondary.Present():
			out.Append(row.Clone())

			swapped := row.Clone()
			swapped[ColumnEmail] = secondary
			swapped[ColumnEmail2] = primary
			out.Append(swapped)

		case primary.Present():
			out.Append(row.Clone())

		case secondary.Present():
			moved := row.Clone()
			moved[ColumnEmail] = secondary
			moved[ColumnEmail2] = dataset.Value{}
			out.Append(moved)

		default:
			// No email on either side: the row contributes no output.
		}
	}

	if hasSecondary {
		out.DropColumn(ColumnEmail2)
	}

	return out, nil
}
