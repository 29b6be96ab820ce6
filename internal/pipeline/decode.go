package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel errors for reading sources.
var (
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrInvalidUTF8     = errors.New("source is not valid UTF-8")
	ErrSourceRead      = errors.New("failed to read source")
)

// DefaultEncoding is assumed when no label is given.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ValidateEncoding resolves label against the WHATWG encoding index and
// returns its canonical name.
func ValidateEncoding(label string) (string, error) {
	if label == "" {
		return DefaultEncoding, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return name, nil
}

// Decode converts data from the named encoding to a UTF-8 string and drops
// a leading byte order mark. UTF-8 input must be valid.
func Decode(data []byte, label string) (string, error) {
	name, err := ValidateEncoding(label)
	if err != nil {
		return "", err
	}

	if name == DefaultEncoding {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return string(data), nil
	}

	enc, _ := htmlindex.Get(name)
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return strings.TrimPrefix(string(out), "\uFEFF"), nil
}

// ReadSource reads path and decodes it with label.
func ReadSource(path, label string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- source paths are user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	text, err := Decode(data, label)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceRead, path, err)
	}
	return text, nil
}
