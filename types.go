package txt2epub

import (
	"context"
	"io"
)

// ItemKind is the closed set of source item variants.
type ItemKind int

const (
	// PlainText items are escaped, split and wrapped in an item template.
	// Unknown and missing extensions land here.
	PlainText ItemKind = iota
	// StructuredText items (.rst) go through the external publisher.
	StructuredText
	// Image items (.png) are copied verbatim.
	Image
	// Markdown items (.md, .markdown) are converted with goldmark when
	// Options.Markdown is set.
	Markdown
)

// String returns the lowercase kind name.
func (k ItemKind) String() string {
	switch k {
	case StructuredText:
		return "structured-text"
	case Image:
		return "image"
	case Markdown:
		return "markdown"
	default:
		return "plain-text"
	}
}

// Media types written to the package manifest.
const (
	MediaTypeXHTML = "application/xhtml+xml"
	MediaTypePNG   = "image/png"
)

// MediaType is the manifest media type of the kind's output.
func (k ItemKind) MediaType() string {
	if k == Image {
		return MediaTypePNG
	}
	return MediaTypeXHTML
}

// OutputExt is the extension of the file the kind produces in content/.
func (k ItemKind) OutputExt() string {
	if k == Image {
		return "png"
	}
	return "html"
}

// SourceItem is one input file with its derived name and type.
// Build it with DeriveItem; it is not modified afterwards.
type SourceItem struct {
	Path string   // as given
	Name string   // sanitized stem, spaces replaced by underscores
	Type string   // lowercase extension, "" when the basename has no dot
	Kind ItemKind // dispatch variant derived from Type
}

// OutputName is the file name written to content/ and recorded in the
// included entry list.
func (s SourceItem) OutputName() string {
	return s.Name + "." + s.Kind.OutputExt()
}

// Options configures a single conversion.
type Options struct {
	// KeepLineBreaks splits plain text on every newline and uses the
	// item-br.html template. Otherwise text is split on blank lines and
	// rendered with item.html.
	KeepLineBreaks bool

	// Markdown converts .md and .markdown sources instead of treating
	// them as plain text.
	Markdown bool

	// Encoding is the WHATWG label of text sources. Empty means utf-8.
	Encoding string

	// Vars are free-form template variables. title, author, language,
	// identifier, publisher, description and date are used by the
	// built-in templates. A string date may be "auto" or "auto:FORMAT".
	Vars map[string]any
}

// ManifestItem describes one included entry to the control templates,
// available as .items.
type ManifestItem struct {
	ID        string // item-1, item-2, ...
	Name      string // derived name
	Href      string // path-escaped output name, relative to content/
	MediaType string
	Title     string // navigation label
	Kind      ItemKind
	InSpine   bool // XHTML items are read in order; images are not
	PlayOrder int  // 1-based position among spine items, 0 otherwise
}

// Result reports what a conversion wrote.
type Result struct {
	Destination string
	Entries     []string     // archive entry names in write order
	Items       []SourceItem // derived items in source order
	WorkArea    string       // scratch directory, set only when kept
}

// StructuredTextPublisher turns reStructuredText into a full HTML document.
type StructuredTextPublisher interface {
	Publish(ctx context.Context, source string) (string, error)
}

// CommandRunner runs an external command with stdin and returns its output.
// It is the seam used by the built-in publishers.
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr string, err error)
}
