// Package assets provides the templates and styles used to build an EPUB.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in set)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a custom directory may override a single style while the
// built-in template set stays in use.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css             # Extra CSS appended to the stylesheet
//	└── templates/
//	    └── {name}/
//	        ├── 00_content.opf     # Package manifest
//	        ├── 00_toc.ncx         # Navigation map
//	        ├── 00_stylesheet.css  # Stylesheet
//	        ├── item.html          # Paragraph-split text item
//	        └── item-br.html       # Line-break-split text item
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
