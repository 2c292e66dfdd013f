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
	fs := flag.NewFlagSet("md2png", flag.ContinueOnError)
	in := fs.String("in", "-", "Input Markdown file (- or empty for stdin)")
	out := fs.String("out", "out.png", "Output image file (.png, .jpg, .bmp or .tiff)")
	width := fs.Int("width", 900, "Output image width in pixels")
	margin := fs.Int("margin", 32, "Margin in pixels")
	size := fs.Float64("size", 16, "Base font size in pixels (paragraph)")
	theme := fs.String("theme", txt2png.DefaultPalette, "Theme: dark|light")
	fontRegular := fs.String("font", "", "TTF path or installed font name for body text (default Go Regular)")
	fontBold := fs.String("fontbold", "", "TTF path or installed font name for bold text (default Go Bold)")
	fontMono := fs.String("fontmono", "", "Monospace TTF path or installed font name for code (default Go Mono)")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := txt2png.NewLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	fonts, err := txt2png.LoadFonts(txt2png.FontConfig{
		RegularPath: *fontRegular,
		BoldPath:    *fontBold,
		MonoPath:    *fontMono,
	})
	if err != nil {
		return err
	}
	data, err := txt2png.ReadInput(*in)
	if err != nil {
		return err
	}

	img, err := txt2png.RenderMarkdown(data, txt2png.MarkdownOptions{
		Width:    *width,
		Margin:   *margin,
		FontSize: *size,
		Theme:    *theme,
		Fonts:    fonts,
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
	_, _ = os.Stderr.WriteString("md2png: " + err.Error() + "\n")
	os.Exit(1)
}
