package txt2png

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
)

// ---- Library entry points ----

// CodeOptions configure RenderCode. Zero values enable defaults: 28px text,
// the dark style, Go Mono, chroma highlighting, tabs left as they are.
type CodeOptions struct {
	FontSize float64
	Font     *truetype.Font
	Language string
	// Style is a chroma style name. Unknown names fail with ErrThemeNotFound.
	Style       string
	TabWidth    int
	NoColor     bool
	Highlighter Highlighter
	Logger      *zap.Logger
}

// TableOptions configure RenderTable. Zero values enable defaults: 24px
// text, the dark palette, Go Mono.
type TableOptions struct {
	FontSize float64
	Font     *truetype.Font
	// Theme is "dark" or "light"; anything else means dark.
	Theme  string
	Logger *zap.Logger
}

func defaultFont(ft *truetype.Font) (*truetype.Font, error) {
	if ft != nil {
		return ft, nil
	}
	return LoadFontFile("")
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// RenderCode highlights code and rasterises it.
func RenderCode(code []byte, opts CodeOptions) (*image.RGBA, error) {
	log := nopIfNil(opts.Logger)
	if opts.FontSize <= 0 {
		opts.FontSize = 28
	}
	style, err := ResolveCodeStyle(opts.Style)
	if err != nil {
		return nil, err
	}
	ft, err := defaultFont(opts.Font)
	if err != nil {
		return nil, err
	}
	m, err := Measure(ft, opts.FontSize)
	if err != nil {
		return nil, err
	}

	src := ExpandTabs(string(code), opts.TabWidth)
	var lines []Line
	switch {
	case opts.NoColor:
		lines = PlainLines(src, ChromaHighlighter{Style: style}.textColor())
	case opts.Highlighter != nil:
		lines, err = opts.Highlighter.Highlight(opts.Language, src)
	default:
		lines, err = ChromaHighlighter{Style: style}.Highlight(opts.Language, src)
	}
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", opts.Language, err)
	}

	l := LayoutCode(lines, m, opts.FontSize)
	log.Debug("code layout",
		zap.String("style", style.Name),
		zap.String("language", opts.Language),
		zap.Float64("advance", m.Advance),
		zap.Int("lines", len(lines)),
		zap.Int("width", l.Width),
		zap.Int("height", l.Height))
	return PaintCode(l, StyleBackground(style), ft, opts.FontSize), nil
}

// RenderTable parses a pipe table and rasterises it.
func RenderTable(raw []byte, opts TableOptions) (*image.RGBA, error) {
	log := nopIfNil(opts.Logger)
	if opts.FontSize <= 0 {
		opts.FontSize = 24
	}
	t := ParseTable(string(raw))
	if t.Columns() == 0 {
		return nil, ErrEmptyTable
	}
	ft, err := defaultFont(opts.Font)
	if err != nil {
		return nil, err
	}
	m, err := Measure(ft, opts.FontSize)
	if err != nil {
		return nil, err
	}
	l, err := LayoutTable(t, m, opts.FontSize)
	if err != nil {
		return nil, err
	}
	log.Debug("table layout",
		zap.String("theme", opts.Theme),
		zap.Int("columns", t.Columns()),
		zap.Int("rows", len(t.Rows)),
		zap.Float64s("column_widths", l.ColumnWidths),
		zap.Int("width", l.Width),
		zap.Int("height", l.Height))
	return PaintTable(t, l, ResolvePalette(opts.Theme), ft, opts.FontSize), nil
}
