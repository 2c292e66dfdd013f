package txt2png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSimple(t *testing.T) {
	tbl := ParseTable("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Equal(t, []string{"a", "b"}, tbl.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)
}

func TestParseTableSkipsSeparators(t *testing.T) {
	raw := `
| Name | Qty | Price |
|:-----|:---:|------:|
| apple | 3 | 1.20 |

| pear | 10 | 0.80 |
| --- | --- | --- |
| fig | 1 | 2.00 |
`
	tbl := ParseTable(raw)
	require.Len(t, tbl.Headers, 3)
	require.Len(t, tbl.Rows, 3)
	for _, row := range tbl.Rows {
		assert.NotContains(t, row[0], "-")
	}
	assert.Equal(t, []string{"fig", "1", "2.00"}, tbl.Rows[2])
}

func TestParseTableWithoutOuterPipes(t *testing.T) {
	tbl := ParseTable("x | y\n--|--\n1 | 2\r\n")
	assert.Equal(t, []string{"x", "y"}, tbl.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)
}

func TestParseTableNoTable(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "|---|---|\n| :-: |"} {
		tbl := ParseTable(raw)
		assert.Empty(t, tbl.Headers, "input %q", raw)
		assert.Zero(t, tbl.Columns())
	}
}

func TestTableCellShortAndLongRows(t *testing.T) {
	tbl := ParseTable("| a | b | c |\n| 1 |\n| 1 | 2 | 3 | 4 |")
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "1", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(0, 1))
	assert.Equal(t, "", tbl.Cell(0, 2))
	assert.Equal(t, "3", tbl.Cell(1, 2))
	assert.Len(t, tbl.Rows[1], 4)
}
