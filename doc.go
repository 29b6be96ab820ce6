// Package txt2epub converts plain-text, reStructuredText and PNG files into
// a single EPUB 2 book.
//
// # Quick Start
//
//	conv, err := txt2epub.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := conv.Convert(ctx, "book.epub",
//	    []string{"intro.txt", "cover.png", "chapter1.rst"},
//	    txt2epub.Options{Vars: map[string]any{"title": "My Book", "author": "Me"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Entries)
//
// # Conversion Pipeline
//
//  1. Each source path is derived into a SourceItem: a name (the basename
//     without its last extension, spaces turned into underscores), a type
//     (the lowercased extension) and a kind.
//  2. A fresh work area is created with META-INF/container.xml and mimetype.
//  3. Every item is transcoded into content/, in source order:
//     PNG images are copied, .rst files go through docutils (or pandoc) and
//     lose the lang attribute of their <html> line, everything else is
//     escaped, split and wrapped in item.html or item-br.html.
//  4. The package (00_content.opf), stylesheet and navigation (00_toc.ncx)
//     documents are rendered from the template set.
//  5. The archive is written with mimetype stored first, then container.xml,
//     package, stylesheet, the items in source order and the navigation map.
//
// # Known Limitations
//
// Derived names are not checked for uniqueness: "a/ch 1.txt" and "b/ch_1.txt"
// both become ch_1.html, the later source wins and the entry appears once.
//
// # Custom Assets
//
//	loader, err := txt2epub.NewAssetLoader("/path/to/assets")
//	conv, err := txt2epub.NewConverter(txt2epub.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── 00_content.opf
//	        ├── 00_toc.ncx
//	        ├── 00_stylesheet.css
//	        ├── item.html
//	        └── item-br.html
//
// Templates use text/template syntax with an escape function.
package txt2epub
