package ui

import (
	"bytes"
	"strings"
	"text/tabwriter"
)

// Table renders a header plus rows as an aligned text table.
func Table(header []string, rows [][]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = headerCellStyle.Render(h)
	}
	writeRow(w, cells)
	for _, row := range rows {
		writeRow(w, row)
	}
	w.Flush()
	return buf.String()
}

func writeRow(w *tabwriter.Writer, cells []string) {
	w.Write([]byte(strings.Join(cells, "\t") + "\n"))
}

// OptionGrid renders keyboard rows the way a chat client would lay them out,
// with control tokens dimmed underneath.
func OptionGrid(rows [][]string, controls []string) string {
	var b strings.Builder
	for _, row := range rows {
		styled := make([]string, len(row))
		for i, opt := range row {
			styled[i] = optionStyle.Render("[" + opt + "]")
		}
		b.WriteString("  " + strings.Join(styled, " ") + "\n")
	}
	if len(controls) > 0 {
		styled := make([]string, len(controls))
		for i, c := range controls {
			styled[i] = controlStyle.Render(c)
		}
		b.WriteString("  " + styled[0])
		for _, s := range styled[1:] {
			b.WriteString(" · " + s)
		}
		b.WriteString("\n")
	}
	return b.String()
}
