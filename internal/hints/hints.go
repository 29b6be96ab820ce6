// Package hints provides actionable suffixes for common failures.
// Each hint is formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// LookupEnv is swapped in tests.
var LookupEnv = os.Getenv

// ForPublisherNotFound suggests how to install the structured-text publisher
// named by backend ("docutils" or "pandoc").
func ForPublisherNotFound(backend string) string {
	switch backend {
	case "pandoc":
		return format("install pandoc (https://pandoc.org/installing.html) or use --rst-backend docutils")
	case "docutils", "":
		h := "install docutils (pip install docutils) so rst2html is on PATH"
		if LookupEnv("VIRTUAL_ENV") != "" {
			h += "; the active virtualenv may not include it"
		}
		return format(h + ", or use --rst-backend pandoc")
	default:
		return format("set --rst-command to an executable reading RST on stdin")
	}
}

// ForTimeout returns a hint about raising the publisher timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config and the first user-level search path.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-txt2epub") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for archive write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEncoding lists a few encoding labels known to work.
func ForEncoding() string {
	return format("use a WHATWG label such as utf-8, windows-1252, iso-8859-15, shift_jis")
}

// ForAssetNotFound lists the available names when any are known.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
