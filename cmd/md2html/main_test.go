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

func TestRunWritesHTML(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	out := filepath.Join(dir, "notes.html")
	require.NoError(t, os.WriteFile(in, []byte("# Notes\n"), 0o644))

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"-in", in, "-out", out}, &stdout))
	assert.Equal(t, out+"\n", stdout.String())
	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<h1")
}

func TestRunWrapsFragmentWithTitle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "frag.html")
	out := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(in, []byte("<p>hi</p>"), 0o644))

	require.NoError(t, run([]string{"-in", in, "-out", out, "-html"}, &bytes.Buffer{}))
	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<title>frag</title>")
	assert.Contains(t, string(doc), "<p>hi</p>")
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	err := run([]string{"-in", filepath.Join(dir, "nope.md"), "-out", filepath.Join(dir, "a.html")}, &stdout)
	assert.ErrorIs(t, err, txt2png.ErrInput)

	in := filepath.Join(dir, "ok.md")
	require.NoError(t, os.WriteFile(in, []byte("ok\n"), 0o644))
	err = run([]string{"-in", in, "-out", filepath.Join(dir, "missing", "a.html")}, &stdout)
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
}
