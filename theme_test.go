package txt2png

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePalette(t *testing.T) {
	light := ResolvePalette("light")
	dark := ResolvePalette("dark")
	assert.Equal(t, color.RGBA{0xF0, 0xF0, 0xF0, 0xFF}, light.HeaderBackground)
	assert.Equal(t, color.RGBA{0x1E, 0x22, 0x2A, 0xFF}, dark.HeaderBackground)
	assert.NotEqual(t, dark.HeaderBackground, light.HeaderBackground)
	assert.Equal(t, color.RGBA{43, 48, 59, 0xFF}, dark.Background)
	assert.Equal(t, color.RGBA{200, 200, 200, 0xFF}, light.Border)
}

func TestResolvePaletteFallsBackToDark(t *testing.T) {
	dark := ResolvePalette("dark")
	for _, name := range []string{"", "solarized", "DARKER", "Light", " light "} {
		assert.Equal(t, dark, ResolvePalette(name), "name %q", name)
	}
}

func TestPaletteNames(t *testing.T) {
	assert.Equal(t, []string{"dark", "light"}, PaletteNames())
}

func TestParsePalettesErrors(t *testing.T) {
	_, err := parsePalettes([]byte("dark:\n  background: \"#zzzzzz\"\n"))
	assert.Error(t, err)
	_, err = parsePalettes([]byte("light:\n  background: \"#ffffff\"\n  header_background: \"#ffffff\"\n" +
		"  alt_row_background: \"#ffffff\"\n  text: \"#000000\"\n  header_text: \"#000000\"\n  border: \"#000000\"\n" +
		"  link: \"#0000ff\"\n"))
	assert.ErrorContains(t, err, "dark")
}

func TestResolveCodeStyle(t *testing.T) {
	s, err := ResolveCodeStyle("")
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Name)

	for _, name := range []string{"dark", "light", "base16-ocean.dark", "monokai"} {
		s, err := ResolveCodeStyle(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name)
	}

	_, err = ResolveCodeStyle("no-such-style")
	require.ErrorIs(t, err, ErrThemeNotFound)
	assert.ErrorContains(t, err, "light")

	_, err = ResolveCodeStyle("Dark")
	assert.ErrorIs(t, err, ErrThemeNotFound)

	names := CodeStyleNames()
	assert.Contains(t, names, "dark")
	assert.Contains(t, names, "light")
	assert.Contains(t, names, "github")
}

func TestCodeStylesMatchPalettes(t *testing.T) {
	for _, name := range PaletteNames() {
		s, err := ResolveCodeStyle(name)
		require.NoError(t, err)
		p := ResolvePalette(name)
		assert.Equal(t, p.Background, StyleBackground(s), name)
		assert.Equal(t, p.Text, ChromaHighlighter{Style: s}.textColor(), name)
	}
	ocean, err := ResolveCodeStyle("base16-ocean.dark")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{43, 48, 59, 0xFF}, StyleBackground(ocean))
}

func TestStyleBackground(t *testing.T) {
	assert.Equal(t, fallbackCodeBackground, StyleBackground(nil))

	s, err := ResolveCodeStyle("monokai")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x27, 0x28, 0x22, 0xFF}, StyleBackground(s))
}
