package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToXHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name     string
		title    string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and paragraph",
			title:    "intro",
			input:    "# Hello\n\nWorld",
			contains: []string{`<h1 id="hello">Hello</h1>`, "<p>World</p>", "<title>intro</title>"},
		},
		{
			name:     "document wrapper",
			title:    "x",
			input:    "text",
			contains: []string{`<?xml version="1.0" encoding="utf-8"?>`, `xmlns="http://www.w3.org/1999/xhtml"`, `href="00_stylesheet.css"`},
		},
		{
			name:     "title is escaped",
			title:    "a<b",
			input:    "x",
			contains: []string{"<title>a&lt;b</title>"},
		},
		{
			name:     "xhtml void elements",
			title:    "x",
			input:    "a\n\n---\n\nb",
			contains: []string{"<hr />"},
		},
		{
			name:     "highlight marks",
			title:    "x",
			input:    "some ==important== text",
			contains: []string{"<mark>important</mark>"},
		},
		{
			name:     "code block uses classes",
			title:    "x",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
			excludes: []string{"style="},
		},
		{
			name:     "raw html dropped",
			title:    "x",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToXHTML(context.Background(), tt.title, tt.input)
			if err != nil {
				t.Fatalf("ToXHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToXHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToXHTML(ctx, "x", "# y")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS()
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() missing .chroma selector:\n%s", css)
	}
}

func TestMarkHighlights(t *testing.T) {
	t.Parallel()

	got := ConvertMarkPlaceholders(MarkHighlights("a ==b== c ==d=="))
	if got != "a <mark>b</mark> c <mark>d</mark>" {
		t.Errorf("round trip = %q", got)
	}
	if MarkHighlights("a == b") != "a == b" {
		t.Error("unpaired marker should be left alone")
	}
}
