package txt2png

import (
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Span is a run of text drawn in one colour. Spans of a Line are ordered
// left to right and never overlap.
type Span struct {
	Text  string
	Color color.RGBA
}

// Line is one physical line of source. Its last span may still carry the
// line terminator.
type Line []Span

// Highlighter turns source text into coloured lines.
type Highlighter interface {
	Highlight(language, code string) ([]Line, error)
}

// defaultForeground colours tokens whose style sets no colour at all.
var defaultForeground = color.RGBA{0xC0, 0xC5, 0xCE, 0xFF}

// ChromaHighlighter highlights with a chroma lexer and style. Unknown
// languages are rendered as plain text.
type ChromaHighlighter struct {
	Style *chroma.Style
}

func (h ChromaHighlighter) Highlight(language, code string) ([]Line, error) {
	if code == "" {
		return nil, nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}
	style := h.Style
	if style == nil {
		style, err = ResolveCodeStyle(DefaultCodeStyle)
		if err != nil {
			return nil, err
		}
	}
	fallback := ChromaHighlighter{Style: style}.textColor()

	var lines []Line
	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := make(Line, 0, len(toks))
		for _, tok := range toks {
			fg := fallback
			if c := style.Get(tok.Type).Colour; c.IsSet() {
				fg = chromaRGBA(c)
			}
			line = append(line, Span{Text: tok.Value, Color: fg})
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// textColor is the style's plain text colour.
func (h ChromaHighlighter) textColor() color.RGBA {
	if h.Style == nil {
		return defaultForeground
	}
	if c := h.Style.Get(chroma.Text).Colour; c.IsSet() {
		return chromaRGBA(c)
	}
	return defaultForeground
}

// PlainLines splits code into uncoloured lines, one span per line. It stands
// in for a highlighter when colour is not wanted.
func PlainLines(code string, fg color.RGBA) []Line {
	if code == "" {
		return nil
	}
	raw := strings.SplitAfter(code, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = Line{{Text: s, Color: fg}}
	}
	return lines
}

// ExpandTabs replaces each tab with width spaces. A width of zero or less
// leaves code untouched.
func ExpandTabs(code string, width int) string {
	if width <= 0 || !strings.Contains(code, "\t") {
		return code
	}
	return strings.ReplaceAll(code, "\t", strings.Repeat(" ", width))
}
