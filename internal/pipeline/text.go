package pipeline

import (
	"regexp"
	"strings"
)

// Split separators for plain-text items.
const (
	LineSeparator      = "\n"
	ParagraphSeparator = "\n\n"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// entityReplacer escapes in a single pass, so the ampersand of an inserted
// "&lt;" is never escaped again. Form feeds are dropped.
var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\f", "",
)

// EscapeEntities escapes &, < and > and strips form-feed characters.
func EscapeEntities(content string) string {
	return entityReplacer.Replace(content)
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitContent splits on single newlines when keepLineBreaks is set and on
// blank lines otherwise. Empty segments are kept.
func SplitContent(content string, keepLineBreaks bool) []string {
	if keepLineBreaks {
		return strings.Split(content, LineSeparator)
	}
	return strings.Split(content, ParagraphSeparator)
}

// PrepareText runs the full plain-text preparation: normalize, escape, split.
func PrepareText(content string, keepLineBreaks bool) []string {
	return SplitContent(EscapeEntities(NormalizeLineEndings(content)), keepLineBreaks)
}
