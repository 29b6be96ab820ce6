package epub

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArea fills a work area with control documents and the given items.
func buildArea(t *testing.T, items map[string]string) *WorkArea {
	t.Helper()
	w, err := NewWorkArea(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for _, name := range []string{PackageFile, StylesheetFile, NavigationFile} {
		require.NoError(t, w.WriteContent(name, "<!-- "+name+" -->"))
	}
	for name, body := range items {
		require.NoError(t, w.WriteContent(name, body))
	}
	return w
}

func readEntry(t *testing.T, f *zip.File) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestEntries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"mimetype",
		"META-INF/container.xml",
		"content/00_content.opf",
		"content/00_stylesheet.css",
		"content/intro.html",
		"content/cover.png",
		"content/00_toc.ncx",
	}, Entries([]string{"intro.html", "cover.png"}))

	assert.Len(t, Entries(nil), 5)
}

func TestArchive_OrderAndMethods(t *testing.T) {
	t.Parallel()

	w := buildArea(t, map[string]string{"b.html": "B", "a.html": "A"})
	dst := filepath.Join(t.TempDir(), "book.epub")

	written, err := w.Archive(dst, []string{"b.html", "a.html"})
	require.NoError(t, err)

	zr, err := zip.OpenReader(dst)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, written, names)
	assert.Equal(t, "content/b.html", names[4], "source order, not name order")

	first := zr.File[0]
	assert.Equal(t, "mimetype", first.Name)
	assert.Equal(t, zip.Store, first.Method)
	assert.Empty(t, first.Extra)
	assert.Equal(t, "application/epub+zip", readEntry(t, first))

	for _, f := range zr.File[1:] {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
	}
	assert.Equal(t, "A", readEntry(t, zr.File[5]))
}

func TestArchive_MimetypeAtFixedOffset(t *testing.T) {
	t.Parallel()

	w := buildArea(t, nil)
	dst := filepath.Join(t.TempDir(), "book.epub")
	_, err := w.Archive(dst, nil)
	require.NoError(t, err)

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	// local header is 30 bytes, then the 8-byte name, then the data
	require.Greater(t, len(raw), 58)
	assert.Equal(t, "mimetype", string(raw[30:38]))
	assert.Equal(t, "application/epub+zip", string(raw[38:58]))
}

func TestArchive_OverwritesDestination(t *testing.T) {
	t.Parallel()

	w := buildArea(t, nil)
	dst := filepath.Join(t.TempDir(), "book.epub")
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o600))

	_, err := w.Archive(dst, nil)
	require.NoError(t, err)

	zr, err := zip.OpenReader(dst)
	require.NoError(t, err)
	zr.Close()
}

func TestArchive_MissingItemLeavesNothing(t *testing.T) {
	t.Parallel()

	w := buildArea(t, nil)
	dir := t.TempDir()
	dst := filepath.Join(dir, "book.epub")

	_, err := w.Archive(dst, []string{"ghost.html"})
	require.ErrorIs(t, err, ErrArchive)
	require.ErrorIs(t, err, os.ErrNotExist)

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, leftovers, "no partial archive or temp file")
}

func TestArchive_MissingDestinationDir(t *testing.T) {
	t.Parallel()

	w := buildArea(t, nil)
	_, err := w.Archive(filepath.Join(t.TempDir(), "nope", "book.epub"), nil)
	require.ErrorIs(t, err, ErrArchive)
}
