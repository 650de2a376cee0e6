package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCollectPDFs(t *testing.T) {
	lpdp := t.TempDir()
	gks := t.TempDir()

	touch(t, filepath.Join(lpdp, "b.pdf"), "")
	touch(t, filepath.Join(lpdp, "a.PDF"), "")
	touch(t, filepath.Join(lpdp, "notes.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(lpdp, "nested.pdf"), 0o700))
	touch(t, filepath.Join(gks, "c.pdf"), "")

	files := collectPDFs([]string{lpdp, filepath.Join(lpdp, "missing"), gks})

	assert.Equal(t, []string{
		filepath.Join(lpdp, "a.PDF"),
		filepath.Join(lpdp, "b.pdf"),
		filepath.Join(gks, "c.pdf"),
	}, files)
}

func TestPrintDocument_FailureKeepsMarkers(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.pdf")
	touch(t, broken, "not a pdf at all")

	var out bytes.Buffer
	err := printDocument(&out, broken, true)

	assert.Error(t, err)
	assert.Equal(t, "--- START OF ESSAY: broken.pdf ---\n--- END OF ESSAY: broken.pdf ---\n", out.String())
}

func TestPrintDocument_NoSeparator(t *testing.T) {
	var out bytes.Buffer
	err := printDocument(&out, filepath.Join(t.TempDir(), "absent.pdf"), false)

	assert.Error(t, err)
	assert.Empty(t, out.String())
}
