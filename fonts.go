package txt2png

import (
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ---- Font loading ----

// GlyphMetrics is the horizontal advance of the reference glyph at a given
// pixel size. Every character is laid out with this advance.
type GlyphMetrics struct {
	Advance float64
	Size    float64
}

// referenceGlyph is the glyph whose advance stands in for every character.
const referenceGlyph = 'M'

// monospaceSample must all share the reference advance for a font to be
// accepted.
var monospaceSample = []rune{'M', 'i', 'W', '.', '0', ' '}

// LoadMonoFont parses TrueType data. Monospacing is checked by Measure.
func LoadMonoFont(ttf []byte) (*truetype.Font, error) {
	ft, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return ft, nil
}

// LoadFontFile loads the font named by nameOrPath. An empty value selects the
// bundled Go Mono. A value that is not an existing file is looked up among
// the installed system fonts.
func LoadFontFile(nameOrPath string) (*truetype.Font, error) {
	return loadFontOr(nameOrPath, gomono.TTF)
}

// Fonts is the set used for markdown: body text, strong text and code.
type Fonts struct {
	Regular *truetype.Font
	Bold    *truetype.Font
	Mono    *truetype.Font
}

// FontConfig names the fonts of a Fonts set. Empty entries select the
// bundled Go Regular, Go Bold and Go Mono.
type FontConfig struct {
	RegularPath string
	BoldPath    string
	MonoPath    string
}

// LoadFonts loads every font of cfg.
func LoadFonts(cfg FontConfig) (Fonts, error) {
	var f Fonts
	var err error
	if f.Regular, err = loadFontOr(cfg.RegularPath, goregular.TTF); err != nil {
		return f, err
	}
	if f.Bold, err = loadFontOr(cfg.BoldPath, gobold.TTF); err != nil {
		return f, err
	}
	if f.Mono, err = loadFontOr(cfg.MonoPath, gomono.TTF); err != nil {
		return f, err
	}
	return f, nil
}

func loadFontOr(nameOrPath string, bundled []byte) (*truetype.Font, error) {
	if nameOrPath == "" {
		return LoadMonoFont(bundled)
	}
	path := nameOrPath
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
		}
		found, ferr := findfont.Find(nameOrPath)
		if ferr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, nameOrPath, ferr)
		}
		path = found
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return LoadMonoFont(b)
}

// newFace builds a face where one point is one pixel.
func newFace(ft *truetype.Font, size float64) font.Face {
	return truetype.NewFace(ft, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// Measure returns the advance of the reference glyph at size pixels. It fails
// with ErrNotMonospace when the sample glyphs disagree on their advance.
func Measure(ft *truetype.Font, size float64) (GlyphMetrics, error) {
	if ft == nil {
		return GlyphMetrics{}, fmt.Errorf("%w: no font", ErrFontLoad)
	}
	if size <= 0 {
		return GlyphMetrics{}, fmt.Errorf("%w: font size must be positive, got %v", ErrFontLoad, size)
	}
	face := newFace(ft, size)
	defer face.Close()

	ref, ok := face.GlyphAdvance(referenceGlyph)
	if !ok {
		return GlyphMetrics{}, fmt.Errorf("%w: font has no %q glyph", ErrFontLoad, referenceGlyph)
	}
	for _, r := range monospaceSample {
		adv, ok := face.GlyphAdvance(r)
		if ok && adv != ref {
			return GlyphMetrics{}, fmt.Errorf("%w: %w: %q advances %v, %q advances %v",
				ErrFontLoad, ErrNotMonospace, r, fixedToFloat(adv), referenceGlyph, fixedToFloat(ref))
		}
	}
	return GlyphMetrics{Advance: fixedToFloat(ref), Size: size}, nil
}

// ascent is the distance from the top of a line box to its baseline.
func ascent(ft *truetype.Font, size float64) int {
	face := newFace(ft, size)
	defer face.Close()
	return face.Metrics().Ascent.Ceil()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
