package pipeline

import "strings"

const (
	htmlTagPrefix = "<html"
	langPrefix    = ` lang="`
	// a two-character value plus the closing quote
	langValueLen = 3
)

// StripHTMLLang drops a two-character lang="xx" attribute from the first line
// that opens the <html> element. It reports whether a line was rewritten.
// Documents without such a line are returned unchanged.
func StripHTMLLang(doc string) (string, bool) {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if !isHTMLOpenLine(line) {
			continue
		}
		rewritten, ok := dropLang(line)
		if !ok {
			continue
		}
		lines[i] = rewritten
		return strings.Join(lines, "\n"), true
	}
	return doc, false
}

// isHTMLOpenLine matches a line holding exactly one <html ...> opening tag.
func isHTMLOpenLine(line string) bool {
	if !strings.HasPrefix(line, htmlTagPrefix) || !strings.HasSuffix(line, ">") {
		return false
	}
	rest := line[len(htmlTagPrefix):]
	return rest[0] == ' ' || rest[0] == '>'
}

// dropLang removes the first ` lang="xx"` after the tag name. xml:lang is
// left alone since it is not preceded by a space.
func dropLang(line string) (string, bool) {
	start := len(htmlTagPrefix)
	for {
		idx := strings.Index(line[start:], langPrefix)
		if idx == -1 {
			return line, false
		}
		at := start + idx
		valueStart := at + len(langPrefix)
		end := valueStart + langValueLen
		if end <= len(line) && line[end-1] == '"' && !strings.ContainsRune(line[valueStart:end-1], '"') {
			return line[:at] + line[end:], true
		}
		start = valueStart
	}
}
