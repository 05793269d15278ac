// Package preview renders dataset excerpts as aligned plain-text tables for
// display before pairing confirmation.
package preview

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/trufl/Compile-Lists/internal/dataset"
)

// Render formats the first maxRows rows of the dataset as a fixed-width
// table with a header and separator line. Missing cells render empty.
// Column widths use display width rather than byte length so wide runes
// stay aligned.
func Render(ds *dataset.Dataset, maxRows int) string {
	if len(ds.Columns) == 0 {
		return "(empty dataset)"
	}

	rows := ds.Rows
	if maxRows >= 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	widths := make([]int, len(ds.Columns))
	for i, col := range ds.Columns {
		widths[i] = runewidth.StringWidth(col)
	}

	for _, row := range rows {
		for i, col := range ds.Columns {
			if w := runewidth.StringWidth(row[col].Text()); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	writeLine := func(cells []string) {
		b.WriteString("|")

		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			b.WriteString(" |")
		}

		b.WriteString("\n")
	}

	writeLine(ds.Columns)

	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")

	cells := make([]string, len(ds.Columns))
	for _, row := range rows {
		for i, col := range ds.Columns {
			cells[i] = row[col].Text()
		}
		writeLine(cells)
	}

	if len(rows) < len(ds.Rows) {
		fmt.Fprintf(&b, "(showing %d of %d rows)\n", len(rows), len(ds.Rows))
	}

	return b.String()
}
