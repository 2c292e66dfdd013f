package txt2png

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{0xFF, 0, 0, 0xFF}

func spans(texts ...string) Line {
	l := make(Line, len(texts))
	for i, s := range texts {
		l[i] = Span{Text: s, Color: red}
	}
	return l
}

func TestLayoutCodeEmpty(t *testing.T) {
	l := LayoutCode(nil, GlyphMetrics{Advance: 16.8, Size: 28}, 28)
	assert.Equal(t, CodeMinWidth, l.Width)
	assert.Equal(t, CodeMinHeight, l.Height)
	assert.Empty(t, l.Lines)
}

func TestLayoutCodeDimensions(t *testing.T) {
	m := GlyphMetrics{Advance: 10, Size: 20}
	lines := []Line{
		spans("abc\n"),
		spans(strings.Repeat("x", 30), strings.Repeat("y", 20)+"\r\n"),
	}
	l := LayoutCode(lines, m, 20)
	assert.Equal(t, 30, l.LineHeight)
	assert.Equal(t, 50*10+2*CodePadding, l.Width)
	assert.Equal(t, CodeMinHeight+24, l.Height)

	require.Len(t, l.Lines, 2)
	assert.Equal(t, CodePadding, l.Lines[0].Y)
	assert.Equal(t, CodePadding+30, l.Lines[1].Y)
	require.Len(t, l.Lines[1].Runs, 2)
	assert.Equal(t, float64(CodePadding), l.Lines[1].Runs[0].X)
	assert.Equal(t, float64(CodePadding+300), l.Lines[1].Runs[1].X)
	assert.Equal(t, strings.Repeat("y", 20), l.Lines[1].Runs[1].Text)
}

func TestLayoutCodeWidthFormula(t *testing.T) {
	for _, adv := range []float64{1, 7.5, 16.796875, 33.3} {
		for _, n := range []int{0, 3, 40, 120} {
			m := GlyphMetrics{Advance: adv, Size: 28}
			l := LayoutCode([]Line{spans(strings.Repeat("é", n) + "\n")}, m, 28)
			want := max(int(float64(n)*adv+2*CodePadding), CodeMinWidth)
			assert.Equal(t, want, l.Width, "advance %v, chars %d", adv, n)
		}
	}
}

func TestLayoutCodeSkipsEmptySpans(t *testing.T) {
	m := GlyphMetrics{Advance: 10, Size: 20}
	l := LayoutCode([]Line{spans("ab", "", "\n"), spans("\n")}, m, 20)
	require.Len(t, l.Lines, 2)
	assert.Len(t, l.Lines[0].Runs, 1)
	assert.Empty(t, l.Lines[1].Runs)
	assert.Equal(t, 2*int(math.Round(20*1.5))+2*CodePadding, l.Height)
}

func TestLayoutTable(t *testing.T) {
	tbl := Table{
		Headers: []string{"a", "bbb"},
		Rows:    [][]string{{"cccc"}, {"d", "e", "excess cell is never measured"}},
	}
	l, err := LayoutTable(tbl, GlyphMetrics{Advance: 10, Size: 20}, 20)
	require.NoError(t, err)
	assert.Equal(t, 44.0, l.RowHeight)
	assert.Equal(t, []float64{80, 70}, l.ColumnWidths)
	assert.Equal(t, []float64{16, 96, 166}, l.ColumnX)
	assert.Equal(t, []float64{16, 60, 104, 148}, l.RowY)
	assert.Equal(t, 182, l.Width)
	assert.Equal(t, 164, l.Height)
}

func TestLayoutTableColumnsCoverContent(t *testing.T) {
	m := GlyphMetrics{Advance: 13.4, Size: 22}
	tbl := ParseTable(`| id | description | ok |
|----|-------------|----|
| 1 | short |
| 22 | a considerably longer description | yes |
| 333 | x | no | ignored |`)
	l, err := LayoutTable(tbl, m, 22)
	require.NoError(t, err)
	for j, h := range tbl.Headers {
		assert.GreaterOrEqual(t, l.ColumnWidths[j], measureText(h, m)+2*CellPadX)
	}
	for _, row := range tbl.Rows {
		for j := 0; j < tbl.Columns() && j < len(row); j++ {
			assert.GreaterOrEqual(t, l.ColumnWidths[j], measureText(row[j], m)+2*CellPadX)
		}
	}
}

func TestLayoutTableShortRowKeepsColumns(t *testing.T) {
	m := GlyphMetrics{Advance: 10, Size: 20}
	full, err := LayoutTable(ParseTable("| a | b |\n| 1 | 2 |"), m, 20)
	require.NoError(t, err)
	short, err := LayoutTable(ParseTable("| a | b |\n| 1 |"), m, 20)
	require.NoError(t, err)
	assert.Equal(t, full.ColumnX, short.ColumnX)
}

func TestLayoutTableHeaderOnly(t *testing.T) {
	l, err := LayoutTable(Table{Headers: []string{"only"}}, GlyphMetrics{Advance: 10, Size: 20}, 20)
	require.NoError(t, err)
	assert.Len(t, l.RowY, 2)
	assert.Equal(t, int(math.Ceil(44+2*OuterPad)), l.Height)
}

func TestLayoutTableNoColumns(t *testing.T) {
	_, err := LayoutTable(Table{}, GlyphMetrics{Advance: 10, Size: 20}, 20)
	assert.ErrorIs(t, err, ErrEmptyTable)
}
