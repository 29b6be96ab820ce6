// Package epub owns the on-disk layout of an EPUB 2 build: the scratch
// WorkArea holding META-INF/ and content/, and the Archive step that packs
// it into the container with the mimetype entry stored first.
package epub
