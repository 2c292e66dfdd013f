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
	fs := flag.NewFlagSet("table2png", flag.ContinueOnError)
	in := fs.String("in", "-", "Input file holding a pipe table (- or empty for stdin)")
	out := fs.String("out", "out.png", "Output image file (.png, .jpg, .bmp or .tiff)")
	size := fs.Float64("size", 24, "Font size in pixels")
	theme := fs.String("theme", txt2png.DefaultPalette, "Theme: dark|light")
	fontName := fs.String("font", "", "Monospace TTF path or installed font name (default Go Mono)")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
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

	img, err := txt2png.RenderTable(data, txt2png.TableOptions{
		FontSize: *size,
		Font:     ft,
		Theme:    *theme,
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
	_, _ = os.Stderr.WriteString("table2png: " + err.Error() + "\n")
	os.Exit(1)
}
