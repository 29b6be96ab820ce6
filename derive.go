package txt2epub

import (
	"path/filepath"
	"strings"
)

// DeriveItem computes the derived name, type and kind of a source path.
//
// The directory is dropped, the text after the last dot of the basename is
// the type (lowercased) and everything before it is the stem, with spaces
// replaced by underscores. A basename without a dot is all stem and has an
// empty type. Markdown extensions map to Markdown only when markdown is set.
//
// Names are not checked for uniqueness. Two sources deriving the same name
// write the same output file and the later one wins.
func DeriveItem(path string, markdown bool) SourceItem {
	base := filepath.Base(path)
	stem, typ := base, ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		stem, typ = base[:i], strings.ToLower(base[i+1:])
	}
	return SourceItem{
		Path: path,
		Name: strings.ReplaceAll(stem, " ", "_"),
		Type: typ,
		Kind: kindOf(typ, markdown),
	}
}

// DeriveItems derives every path, preserving order.
func DeriveItems(paths []string, markdown bool) []SourceItem {
	items := make([]SourceItem, len(paths))
	for i, p := range paths {
		items[i] = DeriveItem(p, markdown)
	}
	return items
}

func kindOf(typ string, markdown bool) ItemKind {
	switch typ {
	case "png":
		return Image
	case "rst":
		return StructuredText
	case "md", "markdown":
		if markdown {
			return Markdown
		}
	}
	return PlainText
}
