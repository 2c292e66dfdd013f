package txt2png

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"
)

// Code layout constants, in pixels.
const (
	CodePadding      = 32
	CodeMinWidth     = 400
	CodeMinHeight    = 100
	lineHeightFactor = 1.5
)

// Table layout constants, in pixels.
const (
	CellPadX   = 20
	CellPadY   = 12
	OuterPad   = 16
	borderSize = 1
)

// PlacedRun is a span positioned on the canvas. X is the left edge.
type PlacedRun struct {
	X     float64
	Text  string
	Color color.RGBA
}

// PlacedLine is a line positioned on the canvas. Y is the top of its box.
type PlacedLine struct {
	Y    int
	Runs []PlacedRun
}

// CodeLayout is the geometry of a code image.
type CodeLayout struct {
	Width, Height int
	LineHeight    int
	Lines         []PlacedLine
}

// TableLayout is the geometry of a table image. ColumnX holds the C+1
// vertical grid positions and RowY the header top, every data row top and
// the bottom edge.
type TableLayout struct {
	Width, Height int
	RowHeight     float64
	ColumnWidths  []float64
	ColumnX       []float64
	RowY          []float64
}

func trimTerminator(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// measureText is the width of s under the monospace assumption.
func measureText(s string, m GlyphMetrics) float64 {
	return float64(utf8.RuneCountInString(s)) * m.Advance
}

// LayoutCode places each line and span. Lines are lineHeight apart starting
// at the padding; spans advance by their code point count times the glyph
// advance. The canvas is at least CodeMinWidth x CodeMinHeight.
func LayoutCode(lines []Line, m GlyphMetrics, fontSize float64) CodeLayout {
	lineHeight := int(math.Round(fontSize * lineHeightFactor))
	l := CodeLayout{LineHeight: lineHeight, Lines: make([]PlacedLine, len(lines))}

	maxChars := 0
	for i, line := range lines {
		pl := PlacedLine{Y: CodePadding + i*lineHeight}
		x := float64(CodePadding)
		chars := 0
		for _, span := range line {
			text := trimTerminator(span.Text)
			n := utf8.RuneCountInString(text)
			if n == 0 {
				continue
			}
			pl.Runs = append(pl.Runs, PlacedRun{X: x, Text: text, Color: span.Color})
			x += float64(n) * m.Advance
			chars += n
		}
		if chars > maxChars {
			maxChars = chars
		}
		l.Lines[i] = pl
	}

	l.Width = max(int(float64(maxChars)*m.Advance+2*CodePadding), CodeMinWidth)
	l.Height = max(len(lines)*lineHeight+2*CodePadding, CodeMinHeight)
	return l
}

// LayoutTable computes column widths and grid positions for t. Each column
// is as wide as its widest header or cell plus the horizontal cell padding.
// Every row, header included, has the same height.
func LayoutTable(t Table, m GlyphMetrics, fontSize float64) (TableLayout, error) {
	cols := t.Columns()
	if cols == 0 {
		return TableLayout{}, fmt.Errorf("%w: table has no columns", ErrEmptyTable)
	}
	l := TableLayout{
		RowHeight:    fontSize + 2*CellPadY,
		ColumnWidths: make([]float64, cols),
		ColumnX:      make([]float64, cols+1),
		RowY:         make([]float64, len(t.Rows)+2),
	}
	for j, h := range t.Headers {
		l.ColumnWidths[j] = measureText(h, m)
	}
	for _, row := range t.Rows {
		for j := 0; j < cols && j < len(row); j++ {
			l.ColumnWidths[j] = max(l.ColumnWidths[j], measureText(row[j], m))
		}
	}

	x := float64(OuterPad)
	for j := range l.ColumnWidths {
		l.ColumnWidths[j] += 2 * CellPadX
		l.ColumnX[j] = x
		x += l.ColumnWidths[j]
	}
	l.ColumnX[cols] = x
	for i := range l.RowY {
		l.RowY[i] = OuterPad + float64(i)*l.RowHeight
	}

	l.Width = int(math.Ceil(x + OuterPad))
	l.Height = int(math.Ceil(float64(1+len(t.Rows))*l.RowHeight + 2*OuterPad))
	return l, nil
}
