package epub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-txt2epub/internal/fileutil"
)

// Sentinel errors for work area operations.
var (
	ErrWorkArea     = errors.New("work area setup failed")
	ErrWorkAreaDone = errors.New("work area already closed")
	ErrInvalidName  = errors.New("invalid content name")
)

// Fixed layout of the container.
const (
	MimeType      = "application/epub+zip"
	MimeTypeFile  = "mimetype"
	MetaInfDir    = "META-INF"
	ContainerFile = "META-INF/container.xml"
	ContentDir    = "content"

	PackageFile    = "00_content.opf"
	StylesheetFile = "00_stylesheet.css"
	NavigationFile = "00_toc.ncx"
)

// ContainerXML points readers at the package document.
const ContainerXML = `<?xml version="1.0" encoding="utf-8"?>
<container xmlns="urn:oasis:names:tc:opendocument:xmlns:container" version="1.0">
  <rootfiles>
    <rootfile media-type="application/oebps-package+xml" full-path="content/00_content.opf"/>
  </rootfiles>
</container>
`

// WorkArea is a scratch directory exclusively owned by one build.
// Close removes it unless Keep was called.
type WorkArea struct {
	root   string
	keep   bool
	closed bool
}

// NewWorkArea creates a fresh directory under parent (os.TempDir when
// empty) holding META-INF/ and content/ plus the mimetype and
// container.xml files. Nothing is left behind when setup fails.
func NewWorkArea(parent string) (w *WorkArea, err error) {
	root, err := os.MkdirTemp(parent, "txt2epub-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkArea, err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(root)
		}
	}()

	for _, dir := range []string{MetaInfDir, ContentDir} {
		if err = os.Mkdir(filepath.Join(root, dir), fileutil.DirPermissions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWorkArea, err)
		}
	}

	files := []struct{ name, content string }{
		{MimeTypeFile, MimeType},
		{ContainerFile, ContainerXML},
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.name))
		if err = os.WriteFile(path, []byte(f.content), fileutil.FilePermissions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWorkArea, err)
		}
	}

	return &WorkArea{root: root}, nil
}

// Root is the directory holding the scaffold.
func (w *WorkArea) Root() string { return w.root }

// ContentPath returns where a content item called name lives.
func (w *WorkArea) ContentPath(name string) string {
	return filepath.Join(w.root, ContentDir, name)
}

// WriteContent writes data as content/<name>, replacing an existing file.
func (w *WorkArea) WriteContent(name, data string) error {
	if err := w.checkName(name); err != nil {
		return err
	}
	if err := os.WriteFile(w.ContentPath(name), []byte(data), fileutil.FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// CopyIntoContent copies src byte for byte to content/<name>.
func (w *WorkArea) CopyIntoContent(src, name string) error {
	if err := w.checkName(name); err != nil {
		return err
	}
	return fileutil.CopyFile(src, w.ContentPath(name))
}

// Exists reports whether content/<name> has already been written.
func (w *WorkArea) Exists(name string) bool {
	return fileutil.FileExists(w.ContentPath(name))
}

func (w *WorkArea) checkName(name string) error {
	if w.closed {
		return ErrWorkAreaDone
	}
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Keep makes Close leave the directory on disk.
func (w *WorkArea) Keep() { w.keep = true }

// Kept reports whether Keep was called.
func (w *WorkArea) Kept() bool { return w.keep }

// Close removes the directory tree. It is safe to call more than once.
func (w *WorkArea) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.keep {
		return nil
	}
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("removing work area: %w", err)
	}
	return nil
}
