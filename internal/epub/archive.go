package epub

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/alnah/go-txt2epub/internal/fileutil"
)

// ErrArchive indicates the container could not be written.
var ErrArchive = errors.New("archive failed")

// Entries lists archive entry names in write order: mimetype, container,
// package, stylesheet, the included items in source order, navigation.
func Entries(included []string) []string {
	entries := make([]string, 0, len(included)+5)
	entries = append(entries,
		MimeTypeFile,
		ContainerFile,
		path.Join(ContentDir, PackageFile),
		path.Join(ContentDir, StylesheetFile),
	)
	for _, name := range included {
		entries = append(entries, path.Join(ContentDir, name))
	}
	return append(entries, path.Join(ContentDir, NavigationFile))
}

// Archive packs the work area into dst and returns the entries written.
// mimetype is stored, everything else deflated. dst is replaced atomically
// and left untouched on failure.
func (w *WorkArea) Archive(dst string, included []string) ([]string, error) {
	entries := Entries(included)

	err := fileutil.WriteAtomic(dst, func(out io.Writer) error {
		zw := zip.NewWriter(out)
		for _, name := range entries {
			method := zip.Deflate
			if name == MimeTypeFile {
				method = zip.Store
			}
			if err := w.addEntry(zw, name, method); err != nil {
				return err
			}
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finalizing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArchive, dst, err)
	}
	return entries, nil
}

func (w *WorkArea) addEntry(zw *zip.Writer, name string, method uint16) error {
	f, err := os.Open(filepath.Join(w.root, filepath.FromSlash(name))) // #nosec G304 -- path inside work area
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	hdr := &zip.FileHeader{Name: name, Method: method}
	if name != MimeTypeFile {
		// mimetype carries no extra field so it sits at a fixed offset
		hdr.Modified = info.ModTime()
	}
	hdr.SetMode(fileutil.FilePermissions)

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
