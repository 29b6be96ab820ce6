package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds style and template set names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that name can be used as one path element under
// styles/ or templates/. Dots are rejected with separators, so a name never
// carries its own extension or climbs out of its directory.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// checkTemplate rejects whitespace-only template sources.
func checkTemplate(set, file, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: %s/%s", ErrEmptyTemplate, set, file)
	}
	return nil
}
