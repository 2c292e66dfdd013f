package txt2png

import "strings"

// Table is a parsed pipe table. The header count fixes the column count.
// Rows may be shorter (trailing cells blank) or longer (extra cells ignored).
type Table struct {
	Headers []string
	Rows    [][]string
}

// Columns is the number of columns, len(t.Headers).
func (t Table) Columns() int { return len(t.Headers) }

// Cell returns the text of column col in data row row, or "" when the row
// is too short.
func (t Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col < len(r) {
		return r[col]
	}
	return ""
}

// ParseTable reads a pipe-delimited table. Separator lines such as |---|:-:|
// are skipped; the first remaining line is the header. A result with no
// headers means no table was found. Escaped pipes are not supported.
func ParseTable(raw string) Table {
	var t Table
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSeparator(line) {
			continue
		}
		cells := splitRow(line)
		if t.Headers == nil {
			t.Headers = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func isSeparator(line string) bool {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '|', '-', ':':
			return -1
		}
		return r
	}, line)) == ""
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
