package txt2png

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// cssTemplate styles MarkdownToHTML output; every colour comes from a Palette.
var cssTemplate = template.Must(template.New("css").Funcs(template.FuncMap{"hex": hexOf}).Parse(
	`body{margin:0;padding:24px 32px;background:{{hex .Background}};color:{{hex .Text}};
font-family:-apple-system,'Segoe UI',Helvetica,Arial,sans-serif;font-size:16px;line-height:1.6}
h1,h2,h3,h4,h5,h6{color:{{hex .HeaderText}};margin:1em 0 .4em}
a{color:{{hex .Link}}}
code,pre{font-family:'Go Mono',Menlo,Consolas,monospace;background:{{hex .HeaderBackground}}}
pre{padding:12px 16px;overflow:auto}
blockquote{margin:0;padding-left:12px;border-left:4px solid {{hex .Border}}}
table{border-collapse:collapse}
th,td{border:1px solid {{hex .Border}};padding:6px 12px}
th{background:{{hex .HeaderBackground}};color:{{hex .HeaderText}}}
tr:nth-child(even) td{background:{{hex .AltRowBackground}}}
hr{border:0;border-top:1px solid {{hex .Border}}}`))

func stylesheet(theme string) string {
	var b strings.Builder
	if err := cssTemplate.Execute(&b, ResolvePalette(theme)); err != nil {
		// the template only formats colours
		panic("txt2png: " + err.Error())
	}
	return b.String()
}

// newMarkdown is the goldmark setup shared by the HTML and image outputs.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
}

// MarkdownToHTML converts GitHub flavoured markdown into a standalone HTML
// document styled with the named palette. Raw HTML in the input is passed
// through.
func MarkdownToHTML(md []byte, theme string) ([]byte, error) {
	var body bytes.Buffer
	if err := newMarkdown().Convert(md, &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return WrapHTML(body.Bytes(), "", theme), nil
}

// WrapHTML places an HTML fragment into a complete document with the theme's
// stylesheet.
func WrapHTML(fragment []byte, title, theme string) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	}
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n</head>\n<body>\n", stylesheet(theme))
	b.Write(fragment)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}
