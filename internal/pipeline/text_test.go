package pipeline

import (
	"reflect"
	"testing"
)

func TestEscapeEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c"},
		{"no double escape", "<&>", "&lt;&amp;&gt;"},
		{"existing entity is escaped once", "&lt;", "&amp;lt;"},
		{"form feed stripped", "page\fbreak", "pagebreak"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EscapeEntities(tt.input); got != tt.want {
				t.Errorf("EscapeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\n\r\nb", "a\n\nb"},
		{"a\nb", "a\nb"},
	}
	for _, tt := range tests {
		if got := NormalizeLineEndings(tt.input); got != tt.want {
			t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		input          string
		keepLineBreaks bool
		want           []string
	}{
		{"line breaks", "a\nb\n\nc", true, []string{"a", "b", "", "c"}},
		{"paragraphs", "a\nb\n\nc", false, []string{"a\nb", "c"}},
		{"trailing newline kept as empty segment", "a\n", true, []string{"a", ""}},
		{"no separator", "single", false, []string{"single"}},
		{"empty input", "", false, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitContent(tt.input, tt.keepLineBreaks)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitContent(%q, %v) = %q, want %q", tt.input, tt.keepLineBreaks, got, tt.want)
			}
		})
	}
}

func TestPrepareText(t *testing.T) {
	t.Parallel()

	got := PrepareText("x < y\r\n\r\nfin & done", false)
	want := []string{"x &lt; y", "fin &amp; done"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrepareText() = %q, want %q", got, want)
	}
}
