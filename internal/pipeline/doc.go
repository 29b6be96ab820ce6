// Package pipeline holds the per-item transformation stages of an EPUB build.
//
// Each stage is a small function or a narrow interface:
//   - Source decoding (WHATWG encodings, BOM and UTF-8 checks)
//   - Plain text escaping, line-ending normalization and splitting
//   - reStructuredText publishing through an external command
//   - lang attribute stripping on the published <html> line
//   - Markdown conversion via goldmark with chroma highlighting
//   - Navigation title extraction
//   - Template rendering for control documents and item pages
//
// Packaging and the scratch tree live in internal/epub; the root txt2epub
// package wires the stages together in source order.
package pipeline
