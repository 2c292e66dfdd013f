package txt2png

import (
	_ "embed"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ---- Styles & theme ----

// Palette holds the colours of a rendered table.
type Palette struct {
	Background       color.RGBA
	HeaderBackground color.RGBA
	AltRowBackground color.RGBA
	Text             color.RGBA
	HeaderText       color.RGBA
	Border           color.RGBA
	Link             color.RGBA
}

// DefaultPalette is used for any palette name that is not known.
const DefaultPalette = "dark"

// DefaultCodeStyle is the chroma style used when none is given. The "dark"
// and "light" styles are built from the palettes of the same name.
const DefaultCodeStyle = "dark"

var (
	//go:embed themes.yaml
	themesYAML []byte

	palettesOnce sync.Once
	palettes     map[string]Palette

	registerCodeStyles = sync.OnceFunc(func() {
		for name, p := range loadPalettes() {
			styles.Register(codeStyle(name, p))
		}
		styles.Register(codeStyle("base16-ocean.dark", loadPalettes()[DefaultPalette]))
	})

	// Used when a chroma style declares no background.
	fallbackCodeBackground = color.RGBA{43, 48, 59, 0xFF}
)

type paletteEntry struct {
	Background       string `yaml:"background"`
	HeaderBackground string `yaml:"header_background"`
	AltRowBackground string `yaml:"alt_row_background"`
	Text             string `yaml:"text"`
	HeaderText       string `yaml:"header_text"`
	Border           string `yaml:"border"`
	Link             string `yaml:"link"`
}

func (s paletteEntry) palette() (Palette, error) {
	var p Palette
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{s.Background, &p.Background},
		{s.HeaderBackground, &p.HeaderBackground},
		{s.AltRowBackground, &p.AltRowBackground},
		{s.Text, &p.Text},
		{s.HeaderText, &p.HeaderText},
		{s.Border, &p.Border},
		{s.Link, &p.Link},
	} {
		c, err := parseHex(f.hex)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

func parseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xFF}, nil
}

func parsePalettes(data []byte) (map[string]Palette, error) {
	var entries map[string]paletteEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	out := make(map[string]Palette, len(entries))
	for name, entry := range entries {
		p, err := entry.palette()
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", name, err)
		}
		out[name] = p
	}
	if _, ok := out[DefaultPalette]; !ok {
		return nil, fmt.Errorf("palette %s missing", DefaultPalette)
	}
	return out, nil
}

func loadPalettes() map[string]Palette {
	palettesOnce.Do(func() {
		p, err := parsePalettes(themesYAML)
		if err != nil {
			// themes.yaml is compiled in; a bad file is a build defect.
			panic("txt2png: " + err.Error())
		}
		palettes = p
	})
	return palettes
}

// ResolvePalette returns the table palette called name ("dark" or "light").
// Names match exactly; anything else, including "", resolves to dark.
func ResolvePalette(name string) Palette {
	all := loadPalettes()
	if p, ok := all[name]; ok {
		return p
	}
	return all[DefaultPalette]
}

// PaletteNames lists the built-in table palettes.
func PaletteNames() []string {
	all := loadPalettes()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolveCodeStyle looks up a chroma style by exact name. Unlike
// ResolvePalette it does not fall back: an unknown name is an error listing
// the known styles.
func ResolveCodeStyle(name string) (*chroma.Style, error) {
	registerCodeStyles()
	if name == "" {
		name = DefaultCodeStyle
	}
	if s, ok := styles.Registry[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q; available: %s", ErrThemeNotFound, name, strings.Join(CodeStyleNames(), ", "))
}

// CodeStyleNames lists the chroma styles, sorted.
func CodeStyleNames() []string {
	registerCodeStyles()
	names := styles.Names()
	sort.Strings(names)
	return names
}

// StyleBackground is the background colour declared by style.
func StyleBackground(style *chroma.Style) color.RGBA {
	if style == nil {
		return fallbackCodeBackground
	}
	bg := style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return fallbackCodeBackground
	}
	return chromaRGBA(bg)
}

func chromaRGBA(c chroma.Colour) color.RGBA {
	return color.RGBA{c.Red(), c.Green(), c.Blue(), 0xFF}
}

// Token colours of the palette-backed code styles. The dark set is
// base16-ocean.
var (
	darkTokens = chroma.StyleEntries{
		chroma.Comment:         "#65737e",
		chroma.CommentPreproc:  "#ab7967",
		chroma.Keyword:         "#b48ead",
		chroma.KeywordConstant: "#d08770",
		chroma.KeywordType:     "#ebcb8b",
		chroma.NameFunction:    "#8fa1b3",
		chroma.NameClass:       "#ebcb8b",
		chroma.NameBuiltin:     "#bf616a",
		chroma.NameTag:         "#bf616a",
		chroma.NameAttribute:   "#d08770",
		chroma.LiteralString:   "#a3be8c",
		chroma.LiteralNumber:   "#d08770",
		chroma.Operator:        "#96b5b4",
		chroma.GenericDeleted:  "#bf616a",
		chroma.GenericInserted: "#a3be8c",
	}
	lightTokens = chroma.StyleEntries{
		chroma.Comment:         "italic #969896",
		chroma.CommentPreproc:  "#a71d5d",
		chroma.Keyword:         "#a71d5d",
		chroma.KeywordConstant: "#0086b3",
		chroma.KeywordType:     "#a71d5d",
		chroma.NameFunction:    "#795da3",
		chroma.NameClass:       "#795da3",
		chroma.NameBuiltin:     "#0086b3",
		chroma.NameTag:         "#63a35c",
		chroma.NameAttribute:   "#795da3",
		chroma.LiteralString:   "#183691",
		chroma.LiteralNumber:   "#0086b3",
		chroma.Operator:        "#a71d5d",
		chroma.GenericDeleted:  "#bd2c00",
		chroma.GenericInserted: "#55a532",
	}
)

// codeStyle builds a chroma style whose background and plain text come from
// p. Light palettes get the light token colours.
func codeStyle(name string, p Palette) *chroma.Style {
	tokens := darkTokens
	if luminance(p.Background) > 0.5 {
		tokens = lightTokens
	}
	entries := chroma.StyleEntries{
		chroma.Background: hexOf(p.Text) + " bg:" + hexOf(p.Background),
		chroma.Text:       hexOf(p.Text),
	}
	for t, e := range tokens {
		entries[t] = e
	}
	return chroma.MustNewStyle(name, entries)
}

func luminance(c color.RGBA) float64 {
	_, _, l := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsl()
	return l
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
