package txt2png

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/golang/freetype/truetype"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// Markdown -> raster image, without a browser. Headings, paragraphs, lists,
// code blocks, blockquotes, rules and tables. Paragraphs wrap at spaces;
// code lines and table cells do not. Images are shown by their alt text.

// MarkdownOptions configure RenderMarkdown. Zero values enable defaults:
// 900px width, 32px margin, 16px text, the dark palette, the Go fonts.
type MarkdownOptions struct {
	Width    int
	Margin   int
	FontSize float64
	Theme    string
	Fonts    Fonts
	Logger   *zap.Logger
}

// ---- Paint operations ----

// Markdown is laid out first, into a list of operations, so the canvas can
// be allocated at its final height.
type paintOp interface {
	paint(c *canvas)
}

type fillOp struct {
	r   image.Rectangle
	col color.RGBA
}

func (o fillOp) paint(c *canvas) { c.fillRect(o.r, o.col) }

type textOp struct {
	ft          *truetype.Font
	size        float64
	text        string
	x, baseline int
	col         color.RGBA
}

func (o textOp) paint(c *canvas) { c.drawRun(o.ft, o.size, o.text, o.x, o.baseline, o.col) }

type imageOp struct {
	img *image.RGBA
	at  image.Point
}

func (o imageOp) paint(c *canvas) {
	r := o.img.Bounds().Sub(o.img.Bounds().Min).Add(o.at)
	draw.Draw(c.img, r, o.img, o.img.Bounds().Min, draw.Src)
}

// ---- Inline runs ----

type inlineRun struct {
	text      string
	ft        *truetype.Font
	size      float64
	col       color.RGBA
	underline bool
	lineBreak bool
}

type faceKey struct {
	ft   *truetype.Font
	size float64
}

type mdRenderer struct {
	src    []byte
	fonts  Fonts
	pal    Palette
	style  *chroma.Style
	size   float64
	code   GlyphMetrics // code blocks, at codeScale
	cells  GlyphMetrics // tables, at the body size
	y      int
	ops    []paintOp
	faces  map[faceKey]font.Face
	blocks int
	log    *zap.Logger
}

const (
	codeScale   = 0.95
	codeBoxPad  = 10
	quoteIndent = 16
	lineSpacing = 1.4
)

func (r *mdRenderer) face(ft *truetype.Font, size float64) font.Face {
	k := faceKey{ft, size}
	f, ok := r.faces[k]
	if !ok {
		f = newFace(ft, size)
		r.faces[k] = f
	}
	return f
}

func (r *mdRenderer) width(ft *truetype.Font, size float64, s string) float64 {
	return fixedToFloat(font.MeasureString(r.face(ft, size), s))
}

func (r *mdRenderer) ascent(ft *truetype.Font, size float64) int {
	return r.face(ft, size).Metrics().Ascent.Ceil()
}

func lineHeight(size float64) int { return int(size * lineSpacing) }

func (r *mdRenderer) body() inlineRun {
	return inlineRun{ft: r.fonts.Regular, size: r.size, col: r.pal.Text}
}

// plainText concatenates the text below n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// inlines flattens the inline children of n into styled runs, starting from
// style st.
func (r *mdRenderer) inlines(n ast.Node, st inlineRun, out []inlineRun) []inlineRun {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		run := st
		switch c := child.(type) {
		case *ast.Text:
			run.text = string(c.Segment.Value(r.src))
			out = append(out, run)
			if c.HardLineBreak() {
				out = append(out, inlineRun{lineBreak: true})
			} else if c.SoftLineBreak() {
				run.text = " "
				out = append(out, run)
			}
		case *ast.String:
			run.text = string(c.Value)
			out = append(out, run)
		case *ast.CodeSpan:
			run.ft = r.fonts.Mono
			run.size = st.size * codeScale
			run.text = plainText(c, r.src)
			out = append(out, run)
		case *ast.Emphasis:
			if c.Level >= 2 {
				run.ft = r.fonts.Bold
			}
			out = r.inlines(c, run, out)
		case *ast.Link:
			run.col = r.pal.Link
			run.underline = true
			out = r.inlines(c, run, out)
		case *ast.AutoLink:
			run.col = r.pal.Link
			run.underline = true
			run.text = string(c.Label(r.src))
			out = append(out, run)
		case *ast.Image:
			run.col = r.pal.Link
			run.text = "[" + plainText(c, r.src) + "]"
			out = append(out, run)
		case *extast.TaskCheckBox:
			run.ft = r.fonts.Mono
			run.text = "[ ] "
			if c.IsChecked {
				run.text = "[x] "
			}
			out = append(out, run)
		case *ast.RawHTML:
			// tags carry no text of their own
		default:
			out = r.inlines(child, run, out)
		}
	}
	return out
}

// splitSpaces cuts s into alternating runs of spaces and non-spaces.
func splitSpaces(s string) []string {
	var parts []string
	start := 0
	prev := -1
	for i, c := range s {
		kind := 0
		if unicode.IsSpace(c) {
			kind = 1
		}
		if prev != -1 && kind != prev {
			parts = append(parts, s[start:i])
			start = i
		}
		prev = kind
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

type placedWord struct {
	inlineRun
	w     float64
	space bool
}

// flow places runs between left and right, wrapping at spaces. Words wider
// than the line are placed alone and may overflow.
func (r *mdRenderer) flow(runs []inlineRun, left, right int) {
	limit := float64(right - left)
	var line []placedWord
	var lineW float64

	flush := func(force bool) {
		for len(line) > 0 && line[len(line)-1].space {
			lineW -= line[len(line)-1].w
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			if force {
				r.y += lineHeight(r.size)
			}
			return
		}
		size, ascent := 0.0, 0
		for _, w := range line {
			size = max(size, w.size)
			ascent = max(ascent, r.ascent(w.ft, w.size))
		}
		baseline := r.y + ascent
		x := float64(left)
		for _, w := range line {
			if !w.space {
				r.ops = append(r.ops, textOp{w.ft, w.size, w.text, int(x), baseline, w.col})
			}
			if w.underline {
				uy := baseline + max(1, int(w.size*0.12))
				r.ops = append(r.ops, fillOp{image.Rect(int(x), uy, int(x+w.w), uy+1), w.col})
			}
			x += w.w
		}
		r.y += lineHeight(size)
		line, lineW = line[:0], 0
	}

	for _, run := range runs {
		if run.lineBreak {
			flush(true)
			continue
		}
		for _, part := range splitSpaces(run.text) {
			pw := placedWord{inlineRun: run}
			if unicode.IsSpace([]rune(part)[0]) {
				if len(line) == 0 {
					continue
				}
				pw.text, pw.space = " ", true
			} else {
				pw.text = part
			}
			pw.w = r.width(pw.ft, pw.size, pw.text)
			if !pw.space && lineW+pw.w > limit && len(line) > 0 {
				flush(false)
			}
			line = append(line, pw)
			lineW += pw.w
		}
	}
	flush(false)
}

// ---- Blocks ----

func (r *mdRenderer) renderChildren(parent ast.Node, left, right int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.renderBlock(n, left, right)
	}
}

func headingScale(level int) float64 {
	switch level {
	case 1:
		return 1.9
	case 2:
		return 1.6
	case 3:
		return 1.4
	case 4:
		return 1.25
	default:
		return 1.15
	}
}

func (r *mdRenderer) renderBlock(n ast.Node, left, right int) {
	r.blocks++
	switch nd := n.(type) {
	case *ast.Heading:
		st := inlineRun{ft: r.fonts.Bold, size: r.size * headingScale(nd.Level), col: r.pal.HeaderText}
		r.y += int(r.size * 0.75)
		r.flow(r.inlines(nd, st, nil), left, right)
		r.y += int(r.size * 0.5)
	case *ast.Paragraph:
		r.flow(r.inlines(nd, r.body(), nil), left, right)
		r.y += int(r.size * 0.9)
	case *ast.TextBlock:
		r.flow(r.inlines(nd, r.body(), nil), left, right)
		r.y += int(r.size * 0.3)
	case *ast.List:
		r.renderList(nd, left, right)
	case *ast.FencedCodeBlock:
		r.renderCode(nd, string(nd.Language(r.src)), left, right)
	case *ast.CodeBlock:
		r.renderCode(nd, "", left, right)
	case *ast.HTMLBlock:
		r.renderCode(nd, "html", left, right)
	case *ast.Blockquote:
		top := r.y
		r.renderChildren(nd, left+quoteIndent, right)
		r.ops = append(r.ops, fillOp{image.Rect(left, top, left+4, r.y-int(r.size*0.5)), r.pal.Border})
	case *ast.ThematicBreak:
		y := r.y + 4
		r.ops = append(r.ops, fillOp{image.Rect(left, y, right, y+2), r.pal.Border})
		r.y = y + int(r.size)
	case *extast.Table:
		r.renderTable(nd, left)
	default:
		if n.HasChildren() {
			r.renderChildren(n, left, right)
			return
		}
		r.log.Debug("skipping markdown block", zap.String("kind", n.Kind().String()))
	}
}

func (r *mdRenderer) renderList(l *ast.List, left, right int) {
	num := l.Start
	if num == 0 {
		num = 1
	}
	indent := int(r.size * 2)
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d%c", num, l.Marker)
			num++
		}
		top := r.y
		mx := left + indent - int(r.size*0.5) - int(r.width(r.fonts.Regular, r.size, marker))
		r.ops = append(r.ops, textOp{r.fonts.Regular, r.size, marker, max(mx, left), top + r.ascent(r.fonts.Regular, r.size), r.pal.Text})
		r.renderChildren(item, left+indent, right)
		if r.y == top {
			r.y += lineHeight(r.size)
		}
	}
	r.y += int(r.size * 0.5)
}

// renderCode highlights the lines of n and places them in a filled box. The
// lines are positioned by LayoutCode and shifted into the box.
func (r *mdRenderer) renderCode(n ast.Node, lang string, left, right int) {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(r.src))
	}
	code := ExpandTabs(b.String(), 4)
	lines, err := ChromaHighlighter{Style: r.style}.Highlight(lang, code)
	if err != nil {
		r.log.Warn("highlight failed, drawing plain", zap.String("language", lang), zap.Error(err))
		lines = PlainLines(code, r.pal.Text)
	}

	size := r.size * codeScale
	l := LayoutCode(lines, r.code, size)
	top := r.y + 4
	height := len(l.Lines)*l.LineHeight + 2*codeBoxPad
	r.ops = append(r.ops, fillOp{image.Rect(left, top, right, top+height), r.pal.HeaderBackground})

	ascent := r.ascent(r.fonts.Mono, size)
	dx, dy := left+codeBoxPad-CodePadding, top+codeBoxPad-CodePadding
	for _, line := range l.Lines {
		for _, run := range line.Runs {
			x := int(run.X) + dx
			if x >= right {
				break
			}
			r.ops = append(r.ops, textOp{r.fonts.Mono, size, run.Text, x, line.Y + dy + ascent, run.Color})
		}
	}
	r.y = top + height + int(r.size*0.9)
}

// tableCells is the text of each cell of a header or row node.
func tableCells(row ast.Node, src []byte) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		switch cell := c.(type) {
		case *extast.TableCell:
			cells = append(cells, strings.TrimSpace(plainText(cell, src)))
		case *extast.TableRow:
			cells = append(cells, tableCells(cell, src)...)
		}
	}
	return cells
}

// renderTable draws a GFM table with the table renderer. Its outer padding
// overlaps the left margin.
func (r *mdRenderer) renderTable(n *extast.Table, left int) {
	var t Table
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cells := tableCells(c, r.src)
		if _, ok := c.(*extast.TableHeader); ok && t.Headers == nil {
			t.Headers = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	l, err := LayoutTable(t, r.cells, r.size)
	if err != nil {
		r.log.Debug("skipping table", zap.Error(err))
		return
	}
	img := PaintTable(t, l, r.pal, r.fonts.Mono, r.size)
	r.ops = append(r.ops, imageOp{img, image.Pt(left-OuterPad, r.y)})
	r.y += l.Height
}

// ---- Library entry point ----

// RenderMarkdown lays out a markdown document and rasterises it. The image
// is opts.Width wide and as tall as the content.
func RenderMarkdown(md []byte, opts MarkdownOptions) (*image.RGBA, error) {
	log := nopIfNil(opts.Logger)
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 32
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 16
	}
	if opts.Fonts.Regular == nil || opts.Fonts.Bold == nil || opts.Fonts.Mono == nil {
		bundled, err := LoadFonts(FontConfig{})
		if err != nil {
			return nil, err
		}
		if opts.Fonts.Regular == nil {
			opts.Fonts.Regular = bundled.Regular
		}
		if opts.Fonts.Bold == nil {
			opts.Fonts.Bold = bundled.Bold
		}
		if opts.Fonts.Mono == nil {
			opts.Fonts.Mono = bundled.Mono
		}
	}
	codeMetrics, err := Measure(opts.Fonts.Mono, opts.FontSize*codeScale)
	if err != nil {
		return nil, err
	}
	cellMetrics, err := Measure(opts.Fonts.Mono, opts.FontSize)
	if err != nil {
		return nil, err
	}
	pal := ResolvePalette(opts.Theme)
	styleName := DefaultPalette
	if _, ok := loadPalettes()[opts.Theme]; ok {
		styleName = opts.Theme
	}
	// every palette has a code style of the same name
	style, err := ResolveCodeStyle(styleName)
	if err != nil {
		return nil, err
	}

	r := &mdRenderer{
		src:   md,
		fonts: opts.Fonts,
		pal:   pal,
		style: style,
		size:  opts.FontSize,
		code:  codeMetrics,
		cells: cellMetrics,
		y:     opts.Margin,
		faces: make(map[faceKey]font.Face),
		log:   log,
	}
	doc := newMarkdown().Parser().Parse(text.NewReader(md))
	r.renderChildren(doc, opts.Margin, opts.Width-opts.Margin)

	height := max(r.y+opts.Margin, 2*opts.Margin+50)
	log.Debug("markdown layout",
		zap.Int("blocks", r.blocks),
		zap.Int("ops", len(r.ops)),
		zap.Int("width", opts.Width),
		zap.Int("height", height))

	c := newCanvas(opts.Width, height, pal.Background, opts.Fonts.Regular, opts.FontSize)
	for _, op := range r.ops {
		op.paint(c)
	}
	return c.img, nil
}
