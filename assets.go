package txt2epub

import (
	"github.com/alnah/go-txt2epub/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the built-in extra style (empty rules).
	DefaultStyle = "default"

	// DefaultTemplateSet is the built-in EPUB 2 template set.
	DefaultTemplateSet = "default"
)

// AssetLoader defines the contract for loading extra styles and template sets.
// Implementations may load from filesystem, embedded assets, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the five templates of a set by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if some templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the text/template sources of one EPUB layout.
//
// Package, Navigation and Stylesheet are rendered with the conversion data
// (Options.Vars plus keep_line_breaks, names, items, style, highlight_css).
// Item and ItemBreaks are rendered once per plain-text source with title and
// lines. All templates have an escape function for XML text.
type TemplateSet struct {
	Name       string // Identifier (name or path)
	Package    string // 00_content.opf
	Navigation string // 00_toc.ncx
	Stylesheet string // 00_stylesheet.css
	Item       string // item.html, text split on blank lines
	ItemBreaks string // item-br.html, text split on newlines
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for extra styles
//   - templates/{name}/ with the five template files
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, publicError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter exposes an internal loader with public types and errors.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	if err != nil {
		return "", publicError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.loader.LoadTemplateSet(name)
	if err != nil {
		return nil, publicError(err)
	}
	return fromInternalSet(ts), nil
}

// publicToInternalAdapter lets a user AssetLoader stand in for the internal one.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return toInternalSet(ts), nil
}

func fromInternalSet(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{
		Name:       ts.Name,
		Package:    ts.Package,
		Navigation: ts.Navigation,
		Stylesheet: ts.Stylesheet,
		Item:       ts.Item,
		ItemBreaks: ts.ItemBreaks,
	}
}

func toInternalSet(ts *TemplateSet) *assets.TemplateSet {
	return &assets.TemplateSet{
		Name:       ts.Name,
		Package:    ts.Package,
		Navigation: ts.Navigation,
		Stylesheet: ts.Stylesheet,
		Item:       ts.Item,
		ItemBreaks: ts.ItemBreaks,
	}
}

// DefaultTemplates returns a copy of the built-in template set, a starting
// point for custom sets.
func DefaultTemplates() *TemplateSet {
	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		// embedded assets are compiled in
		panic("txt2epub: built-in template set unavailable: " + err.Error())
	}
	return fromInternalSet(ts)
}

// StyleNames lists the built-in extra styles.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// AvailableStyles lists the styles visible with assetPath as custom
// directory: its styles/ entries plus the built-in ones. An invalid or
// empty assetPath yields the built-in names.
func AvailableStyles(assetPath string) []string {
	if assetPath == "" {
		return StyleNames()
	}
	r, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return StyleNames()
	}
	return r.StyleNames()
}
