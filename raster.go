package txt2png

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// ---- Layout primitives ----

type canvas struct {
	img    *image.RGBA
	dc     *freetype.Context
	ascent int
}

// newCanvas allocates a w x h canvas filled with bg. The size is final.
func newCanvas(w, h int, bg color.Color, ft *truetype.Font, size float64) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	dc := freetype.NewContext()
	dc.SetDPI(72)
	dc.SetFont(ft)
	dc.SetFontSize(size)
	dc.SetHinting(font.HintingNone)
	dc.SetClip(img.Bounds())
	dc.SetDst(img)

	return &canvas{img: img, dc: dc, ascent: ascent(ft, size)}
}

func (c *canvas) fillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	c.fillRect(image.Rect(x0, y, x1+borderSize, y+borderSize), col)
}

func (c *canvas) vline(x, y0, y1 int, col color.Color) {
	c.fillRect(image.Rect(x, y0, x+borderSize, y1+borderSize), col)
}

// drawText draws s with its line box top-left at (x, top).
func (c *canvas) drawText(s string, x, top int, col color.Color) {
	if s == "" {
		return
	}
	c.dc.SetSrc(image.NewUniform(col))
	_, _ = c.dc.DrawString(s, freetype.Pt(x, top+c.ascent))
}

// drawRun draws s in font ft at size with its baseline at y.
func (c *canvas) drawRun(ft *truetype.Font, size float64, s string, x, baseline int, col color.Color) {
	if s == "" {
		return
	}
	c.dc.SetFont(ft)
	c.dc.SetFontSize(size)
	c.dc.SetSrc(image.NewUniform(col))
	_, _ = c.dc.DrawString(s, freetype.Pt(x, baseline))
}

// PaintCode draws a laid out code image: the background, then every run in
// its own colour.
func PaintCode(l CodeLayout, bg color.Color, ft *truetype.Font, size float64) *image.RGBA {
	c := newCanvas(l.Width, l.Height, bg, ft, size)
	for _, line := range l.Lines {
		for _, run := range line.Runs {
			c.drawText(run.Text, int(run.X), line.Y, run.Color)
		}
	}
	return c.img
}

// PaintTable draws t using layout l. Later steps paint over earlier ones:
// background, header band, alternate row stripes, grid, header text, cells.
func PaintTable(t Table, l TableLayout, p Palette, ft *truetype.Font, size float64) *image.RGBA {
	c := newCanvas(l.Width, l.Height, p.Background, ft, size)
	cols := t.Columns()
	left, right := int(l.ColumnX[0]), int(l.ColumnX[cols])
	rowH := int(l.RowHeight)

	top := int(l.RowY[0])
	c.fillRect(image.Rect(left, top, right, top+rowH), p.HeaderBackground)
	for i := range t.Rows {
		if i%2 == 1 {
			y := int(l.RowY[i+1])
			c.fillRect(image.Rect(left, y, right, y+rowH), p.AltRowBackground)
		}
	}

	bottom := int(l.RowY[len(l.RowY)-1])
	for _, y := range l.RowY {
		c.hline(left, right, int(y), p.Border)
	}
	for _, x := range l.ColumnX {
		c.vline(int(x), top, bottom, p.Border)
	}

	for j, h := range t.Headers {
		c.drawText(h, int(l.ColumnX[j]+CellPadX), int(l.RowY[0]+CellPadY), p.HeaderText)
	}
	for i := range t.Rows {
		y := int(l.RowY[i+1] + CellPadY)
		for j := 0; j < cols; j++ {
			c.drawText(t.Cell(i, j), int(l.ColumnX[j]+CellPadX), y, p.Text)
		}
	}
	return c.img
}
