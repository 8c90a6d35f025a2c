package worker

import "strings"

// renderSheet renders one sheet as a heading followed by a pipe table. The
// first row becomes the table header. Empty sheets render the heading only.
func renderSheet(name string, rows [][]string) string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(name)
	b.WriteString("\n\n")
	if width == 0 {
		return b.String()
	}

	for i, r := range rows {
		b.WriteString("|")
		for j := 0; j < width; j++ {
			cell := ""
			if j < len(r) {
				cell = r[j]
			}
			b.WriteString(" ")
			b.WriteString(escapeCell(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString("|")
			b.WriteString(strings.Repeat(" --- |", width))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// escapeCell keeps cell content from breaking the table structure.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return s
}
