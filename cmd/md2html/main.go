package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arran4/txt2png"
)

// md2html produces the HTML half of a markdown screenshot; any headless
// browser can capture the result. md2png draws markdown directly.
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	in := fs.String("in", "-", "Input Markdown or HTML file (- or empty for stdin)")
	out := fs.String("out", "out.html", "Output HTML file")
	theme := fs.String("theme", txt2png.DefaultPalette, "Theme: dark|light")
	rawHTML := fs.Bool("html", false, "Treat input as an HTML fragment (skip markdown conversion)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := txt2png.ReadInput(*in)
	if err != nil {
		return err
	}

	var doc []byte
	if *rawHTML {
		title := ""
		if *in != "" && *in != "-" {
			title = strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
		}
		doc = txt2png.WrapHTML(data, title, *theme)
	} else {
		doc, err = txt2png.MarkdownToHTML(data, *theme)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, *out)
	return nil
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("md2html: " + err.Error() + "\n")
	os.Exit(1)
}
