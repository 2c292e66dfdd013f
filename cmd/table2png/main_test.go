package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arran4/txt2png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.md")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table.jpg")
	var stdout bytes.Buffer
	in := writeTable(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, run([]string{"-in", in, "-out", out, "-theme", "light"}, &stdout))
	assert.Equal(t, out+"\n", stdout.String())
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTable(t, "| a |\n| 1 |\n")
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing input", []string{"-in", filepath.Join(dir, "nope.md"), "-out", filepath.Join(dir, "a.png")}, txt2png.ErrInput},
		{"bad extension", []string{"-in", good, "-out", filepath.Join(dir, "a.webp")}, txt2png.ErrEncode},
		{"no table", []string{"-in", writeTable(t, "\n\n"), "-out", filepath.Join(dir, "b.png")}, txt2png.ErrEmptyTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			assert.ErrorIs(t, run(tt.args, &stdout), tt.want)
			assert.Empty(t, stdout.String())
		})
	}
}
