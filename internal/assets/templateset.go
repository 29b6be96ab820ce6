package assets

import "fmt"

// Template file names. The names double as template identifiers and, for the
// three control documents, as the file names written into the EPUB.
const (
	PackageTemplate    = "00_content.opf"
	NavigationTemplate = "00_toc.ncx"
	StylesheetTemplate = "00_stylesheet.css"
	ItemTemplate       = "item.html"
	ItemBreaksTemplate = "item-br.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in extra style.
const DefaultStyleName = "default"

// TemplateNames lists every template a set must provide, in load order.
var TemplateNames = []string{
	PackageTemplate,
	NavigationTemplate,
	StylesheetTemplate,
	ItemTemplate,
	ItemBreaksTemplate,
}

// TemplateSet holds the raw template sources of one EPUB layout.
type TemplateSet struct {
	Name       string // Identifier (name or directory path)
	Package    string // Package manifest (content.opf)
	Navigation string // Navigation map (toc.ncx)
	Stylesheet string // Stylesheet
	Item       string // Text item split on blank lines
	ItemBreaks string // Text item split on single newlines

	// Overridden lists the templates read from a custom directory when the
	// set was merged over an embedded one.
	Overridden []string
}

// Source returns the template source registered under the given file name.
func (ts *TemplateSet) Source(name string) (string, error) {
	switch name {
	case PackageTemplate:
		return ts.Package, nil
	case NavigationTemplate:
		return ts.Navigation, nil
	case StylesheetTemplate:
		return ts.Stylesheet, nil
	case ItemTemplate:
		return ts.Item, nil
	case ItemBreaksTemplate:
		return ts.ItemBreaks, nil
	}
	return "", fmt.Errorf("%w: unknown template %q", ErrIncompleteTemplateSet, name)
}

// set assigns content to the field registered under name.
func (ts *TemplateSet) set(name, content string) {
	switch name {
	case PackageTemplate:
		ts.Package = content
	case NavigationTemplate:
		ts.Navigation = content
	case StylesheetTemplate:
		ts.Stylesheet = content
	case ItemTemplate:
		ts.Item = content
	case ItemBreaksTemplate:
		ts.ItemBreaks = content
	}
}

// Sources returns every template keyed by its file name.
func (ts *TemplateSet) Sources() map[string]string {
	out := make(map[string]string, len(TemplateNames))
	for _, name := range TemplateNames {
		src, _ := ts.Source(name)
		out[name] = src
	}
	return out
}
