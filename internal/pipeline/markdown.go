package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates Markdown conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// HighlightStyle is the chroma style used for code blocks.
const HighlightStyle = "github"

// xhtmlDocument wraps goldmark's fragment output in an XHTML 1.1 page that
// links the shared stylesheet.
const xhtmlDocument = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
<meta http-equiv="Content-Type" content="application/xhtml+xml; charset=utf-8" />
<title>%s</title>
<link rel="stylesheet" href="00_stylesheet.css" type="text/css" />
</head>
<body>
%s</body>
</html>
`

// MarkdownConverter abstracts Markdown to XHTML conversion.
type MarkdownConverter interface {
	ToXHTML(ctx context.Context, title, content string) (string, error)
}

// GoldmarkConverter converts Markdown with goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // classes are styled by HighlightCSS in the shared stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			// no WithUnsafe: raw HTML in sources is dropped
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToXHTML converts Markdown content to a standalone XHTML document titled title.
// Goldmark has no context support, so conversion runs in a goroutine and the
// caller returns early on cancellation.
func (c *GoldmarkConverter) ToXHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(MarkHighlights(NormalizeLineEndings(content))), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{body: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return fmt.Sprintf(xhtmlDocument, html.EscapeString(title), r.body), nil
	}
}

// HighlightCSS returns the stylesheet for the classes emitted on code blocks.
func HighlightCSS() (string, error) {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(HighlightStyle)); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return b.String(), nil
}
