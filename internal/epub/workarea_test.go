package epub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkArea_Scaffold(t *testing.T) {
	t.Parallel()

	w, err := NewWorkArea(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.DirExists(t, filepath.Join(w.Root(), MetaInfDir))
	assert.DirExists(t, filepath.Join(w.Root(), ContentDir))

	mime, err := os.ReadFile(filepath.Join(w.Root(), MimeTypeFile))
	require.NoError(t, err)
	assert.Equal(t, "application/epub+zip", string(mime))

	container, err := os.ReadFile(filepath.Join(w.Root(), filepath.FromSlash(ContainerFile)))
	require.NoError(t, err)
	assert.Contains(t, string(container), `full-path="content/00_content.opf"`)
}

func TestNewWorkArea_Unique(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	a, err := NewWorkArea(parent)
	require.NoError(t, err)
	defer a.Close()
	b, err := NewWorkArea(parent)
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Root(), b.Root())
}

func TestNewWorkArea_BadParent(t *testing.T) {
	t.Parallel()

	_, err := NewWorkArea(filepath.Join(t.TempDir(), "missing", "deeper"))
	require.ErrorIs(t, err, ErrWorkArea)
}

func TestWorkArea_WriteAndCopy(t *testing.T) {
	t.Parallel()

	w, err := NewWorkArea(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteContent("intro.html", "<p>hi</p>"))
	got, err := os.ReadFile(w.ContentPath("intro.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))
	assert.True(t, w.Exists("intro.html"))
	assert.False(t, w.Exists("other.html"))

	src := filepath.Join(t.TempDir(), "cover.png")
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00}
	require.NoError(t, os.WriteFile(src, png, 0o600))
	require.NoError(t, w.CopyIntoContent(src, "cover.png"))
	copied, err := os.ReadFile(w.ContentPath("cover.png"))
	require.NoError(t, err)
	assert.Equal(t, png, copied)
}

func TestWorkArea_WriteContent_Overwrites(t *testing.T) {
	t.Parallel()

	w, err := NewWorkArea(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteContent("a.html", "first"))
	require.NoError(t, w.WriteContent("a.html", "second"))
	got, err := os.ReadFile(w.ContentPath("a.html"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestWorkArea_InvalidNames(t *testing.T) {
	t.Parallel()

	w, err := NewWorkArea(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	for _, name := range []string{"", ".", "..", "../escape.html", "sub/dir.html"} {
		assert.ErrorIs(t, w.WriteContent(name, "x"), ErrInvalidName, "name %q", name)
	}
}

func TestWorkArea_Close(t *testing.T) {
	t.Parallel()

	t.Run("removes tree", func(t *testing.T) {
		t.Parallel()
		w, err := NewWorkArea(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.NoDirExists(t, w.Root())
		assert.NoError(t, w.Close(), "second close is a no-op")
		assert.ErrorIs(t, w.WriteContent("a.html", "x"), ErrWorkAreaDone)
	})

	t.Run("keep leaves tree", func(t *testing.T) {
		t.Parallel()
		w, err := NewWorkArea(t.TempDir())
		require.NoError(t, err)
		w.Keep()
		assert.True(t, w.Kept())
		require.NoError(t, w.Close())
		assert.DirExists(t, w.Root())
	})
}
