// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath = errors.New("path cannot be empty")
	ErrIsDir     = errors.New("path is a directory")
	ErrSamePath  = errors.New("source and destination are the same file")

	// ErrCopySource and ErrCopyDestination tell which side of CopyFile failed.
	ErrCopySource      = errors.New("reading copy source")
	ErrCopyDestination = errors.New("writing copy destination")
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---
	FilePermissions = 0o644 // rw-r--r--
)

// CopyFile copies src to dst byte for byte, replacing dst if it exists.
// Failures wrap ErrCopySource or ErrCopyDestination.
func CopyFile(src, dst string) (err error) {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	in, err := os.Open(src) // #nosec G304 -- caller-provided source path
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrCopySource, src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrCopySource, src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %w: %s", ErrCopySource, ErrIsDir, src)
	}
	if out, statErr := os.Stat(dst); statErr == nil && os.SameFile(info, out) {
		return fmt.Errorf("%w: %w: %s", ErrCopyDestination, ErrSamePath, dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions) // #nosec G304 -- destination inside work area
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrCopyDestination, dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrCopyDestination, dst, closeErr)
		}
	}()

	r := &sourceReader{r: in}
	if _, err := io.Copy(out, r); err != nil {
		if r.err != nil {
			return fmt.Errorf("%w: reading %s: %w", ErrCopySource, src, err)
		}
		return fmt.Errorf("%w: writing %s: %w", ErrCopyDestination, dst, err)
	}
	return nil
}

// sourceReader remembers the last read error so a failed io.Copy can be
// attributed to the source or the destination.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// WriteAtomic writes dst through a temporary file in the same directory and
// renames it into place once write succeeds. On any error the temporary file
// is removed and dst is left untouched.
func WriteAtomic(dst string, write func(w io.Writer) error) (err error) {
	if dst == "" {
		return ErrEmptyPath
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, FilePermissions); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "sans" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/book.yaml" -> true (absolute)
//   - "C:\windows\book.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
