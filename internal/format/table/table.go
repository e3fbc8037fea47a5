// Package table lays out rows of cells in aligned columns for the terminal
// list views.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column. Cells wider than Max are cut with an
// ellipsis; a zero Max leaves them alone.
type Column struct {
	Align Alignment
	Max   int
}

const gap = "  "

// Format returns the rows padded to the widest cell of each column. Trailing
// blanks are dropped, so a row whose last cells are empty ends early.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for c, cell := range row {
			if c < len(columns) && columns[c].Max > 0 {
				cell = truncate.StringWithTail(cell, uint(columns[c].Max), "…")
			}
			cells[i][c] = cell
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			pad := strings.Repeat(" ", widths[c]-lipgloss.Width(cell))
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell + pad)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}
