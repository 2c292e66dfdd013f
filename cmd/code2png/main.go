package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arran4/txt2png"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("code2png", flag.ContinueOnError)
	in := fs.String("in", "-", "Input source file (- or empty for stdin)")
	out := fs.String("out", "out.png", "Output image file (.png, .jpg, .bmp or .tiff)")
	lang := fs.String("lang", "plain", "Language for syntax highlighting (e.g. go, rust, python)")
	size := fs.Float64("size", 28, "Font size in pixels")
	theme := fs.String("theme", txt2png.DefaultCodeStyle, "Highlighting style (see -list-themes)")
	fontName := fs.String("font", "", "Monospace TTF path or installed font name (default Go Mono)")
	tab := fs.Int("tab", 4, "Spaces per tab; 0 keeps tabs")
	noColor := fs.Bool("nocolor", false, "Draw all text in the style's plain text colour")
	listThemes := fs.Bool("list-themes", false, "List highlighting styles and exit")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listThemes {
		for _, n := range txt2png.CodeStyleNames() {
			_, _ = fmt.Fprintln(stdout, n)
		}
		return nil
	}

	log, err := txt2png.NewLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ft, err := txt2png.LoadFontFile(*fontName)
	if err != nil {
		return err
	}
	data, err := txt2png.ReadInput(*in)
	if err != nil {
		return err
	}

	img, err := txt2png.RenderCode(data, txt2png.CodeOptions{
		FontSize: *size,
		Font:     ft,
		Language: *lang,
		Style:    *theme,
		TabWidth: *tab,
		NoColor:  *noColor,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	if err := txt2png.WriteImage(*out, img); err != nil {
		return err
	}
	log.Debug("wrote image", zap.String("path", *out))
	_, _ = fmt.Fprintln(stdout, *out)
	return nil
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("code2png: " + err.Error() + "\n")
	os.Exit(1)
}
