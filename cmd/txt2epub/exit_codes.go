package main

import (
	"errors"
	"os"

	txt2epub "github.com/alnah/go-txt2epub"
	"github.com/alnah/go-txt2epub/internal/config"
)

// Exit codes for the txt2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Archive written
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // Source unreadable, destination unwritable
	ExitPublisher = 4 // reStructuredText publisher missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Publisher errors (exit 4)
	if errors.Is(err, txt2epub.ErrPublisherNotFound) ||
		errors.Is(err, txt2epub.ErrPublish) {
		return ExitPublisher
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, txt2epub.ErrNoSources) ||
		errors.Is(err, txt2epub.ErrEmptySource) ||
		errors.Is(err, txt2epub.ErrEmptyName) ||
		errors.Is(err, txt2epub.ErrEmptyDestination) ||
		errors.Is(err, txt2epub.ErrInvalidEncoding) ||
		errors.Is(err, txt2epub.ErrInvalidDate) ||
		errors.Is(err, txt2epub.ErrInvalidBackend) ||
		errors.Is(err, txt2epub.ErrStyleNotFound) ||
		errors.Is(err, txt2epub.ErrTemplateSetNotFound) ||
		errors.Is(err, txt2epub.ErrIncompleteTemplateSet) ||
		errors.Is(err, txt2epub.ErrInvalidTemplate) ||
		errors.Is(err, txt2epub.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, txt2epub.ErrSourceRead) ||
		errors.Is(err, txt2epub.ErrWorkArea) ||
		errors.Is(err, txt2epub.ErrArchive) {
		return ExitIO
	}

	return ExitGeneral
}
