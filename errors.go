package txt2epub

import (
	"errors"

	"github.com/alnah/go-txt2epub/internal/assets"
	"github.com/alnah/go-txt2epub/internal/epub"
	"github.com/alnah/go-txt2epub/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrNoSources        = errors.New("at least one source is required")
	ErrEmptySource      = errors.New("source path cannot be empty")
	ErrEmptyName        = errors.New("derived item name is empty")
	ErrEmptyDestination = errors.New("destination path cannot be empty")
	ErrInvalidEncoding  = errors.New("invalid source encoding")
	ErrInvalidDate      = errors.New("invalid date value")

	// Stage errors.
	ErrSourceRead         = errors.New("failed to read source")
	ErrPublisherNotFound  = errors.New("structured-text publisher not found")
	ErrPublish            = errors.New("structured-text publishing failed")
	ErrMarkdownConversion = errors.New("markdown conversion failed")
	ErrTemplateRender     = errors.New("template rendering failed")
	ErrWorkArea           = errors.New("work area setup failed")
	ErrArchive            = errors.New("archive failed")

	// Setup errors.
	ErrInvalidBackend        = errors.New("invalid structured-text backend")
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidTemplate       = errors.New("invalid template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// errorMap pairs internal sentinels with the public ones they surface as.
// Order matters: the first match wins.
var errorMap = []struct {
	internal error
	public   error
}{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	{assets.ErrIncompleteTemplateSet, ErrIncompleteTemplateSet},
	{assets.ErrEmptyTemplate, ErrInvalidTemplate},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
	{assets.ErrInvalidAssetName, ErrStyleNotFound}, // invalid name means not found
	{pipeline.ErrUnknownEncoding, ErrInvalidEncoding},
	{pipeline.ErrPublisherNotFound, ErrPublisherNotFound},
	{pipeline.ErrPublish, ErrPublish},
	{pipeline.ErrUnknownBackend, ErrInvalidBackend},
	{pipeline.ErrMarkdownConversion, ErrMarkdownConversion},
	{pipeline.ErrTemplateParse, ErrInvalidTemplate},
	{pipeline.ErrTemplateRender, ErrTemplateRender},
	{pipeline.ErrNoTemplate, ErrTemplateRender},
	{pipeline.ErrSourceRead, ErrSourceRead},
	{epub.ErrWorkArea, ErrWorkArea},
	{epub.ErrArchive, ErrArchive},
}

// publicError maps internal errors to public sentinels. The original chain
// stays reachable, so os.ErrNotExist or context.Canceled still match.
func publicError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range errorMap {
		if errors.Is(err, m.internal) {
			return wrapError(m.public, err)
		}
	}
	return err
}

// wrapError creates an error that reads like original and matches both
// sentinel and everything original wraps.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

func (e *wrappedError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
