package txt2png

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadInput reads path, or standard input when path is "" or "-". A leading
// byte order mark is dropped.
func ReadInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return decodeInput(os.Stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer f.Close()
	return decodeInput(f, path)
}

func decodeInput(r io.Reader, name string) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, name, err)
	}
	return b, nil
}
