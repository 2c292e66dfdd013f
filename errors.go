package txt2png

import "errors"

// Error kinds returned by the renderers. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrInput         = errors.New("txt2png: cannot read input")
	ErrFontLoad      = errors.New("txt2png: cannot load font")
	ErrNotMonospace  = errors.New("txt2png: font is not monospace")
	ErrThemeNotFound = errors.New("txt2png: theme not found")
	ErrEmptyTable    = errors.New("txt2png: no table found in input")
	ErrEncode        = errors.New("txt2png: cannot encode image")
)
