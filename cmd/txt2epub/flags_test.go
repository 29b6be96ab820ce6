package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-o", "book.epub",
		"-c", "mybook",
		"-b",
		"--markdown",
		"--encoding", "windows-1252",
		"--title", "Title",
		"--author", "Author",
		"--language", "fr",
		"--identifier", "isbn:1",
		"--publisher", "Pub",
		"--description", "Desc",
		"--date", "auto:long",
		"--var", "series=One",
		"--var", "volume=2",
		"--template", "default",
		"--asset-path", "./assets",
		"--style", "extra",
		"--rst-backend", "pandoc",
		"--rst-command", "/opt/pandoc",
		"-t", "45s",
		"--keep-workarea",
		"-v",
		"a.txt", "b.rst",
	}

	f, positional, err := parseConvertFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"output", f.output, "book.epub"},
		{"config", f.common.config, "mybook"},
		{"keepLineBreaks", f.text.keepLineBreaks, true},
		{"markdown", f.text.markdown, true},
		{"encoding", f.text.encoding, "windows-1252"},
		{"title", f.book.title, "Title"},
		{"author", f.book.author, "Author"},
		{"language", f.book.language, "fr"},
		{"identifier", f.book.identifier, "isbn:1"},
		{"publisher", f.book.publisher, "Pub"},
		{"description", f.book.description, "Desc"},
		{"date", f.book.date, "auto:long"},
		{"var series", f.vars["series"], "One"},
		{"var volume", f.vars["volume"], "2"},
		{"template", f.assets.template, "default"},
		{"assetPath", f.assets.assetPath, "./assets"},
		{"style", f.assets.style, "extra"},
		{"backend", f.markup.backend, "pandoc"},
		{"command", f.markup.command, "/opt/pandoc"},
		{"timeout", f.markup.timeout, 45 * time.Second},
		{"keepWorkArea", f.keepWorkArea, true},
		{"verbose", f.common.verbose, true},
		{"quiet", f.common.quiet, false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if strings.Join(positional, ",") != "a.txt,b.rst" {
		t.Errorf("positional = %v, want [a.txt b.rst]", positional)
	}
}

func TestParseConvertFlags_Changed(t *testing.T) {
	t.Parallel()

	f, _, err := parseConvertFlags([]string{"--keep-line-breaks=false", "x.txt"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if !f.set("keep-line-breaks") {
		t.Error("explicit --keep-line-breaks=false should be recorded as set")
	}
	if f.set("markdown") {
		t.Error("markdown was not given and should not be recorded as set")
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantHelp bool
	}{
		{"unknown flag", []string{"--nope"}, false},
		{"bad duration", []string{"--timeout", "soon"}, false},
		{"bad var", []string{"--var", "novalue"}, false},
		{"help", []string{"-h"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stderr bytes.Buffer
			_, _, err := parseConvertFlags(tt.args, &stderr)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, errHelpRequested); got != tt.wantHelp {
				t.Errorf("errors.Is(err, errHelpRequested) = %v, want %v", got, tt.wantHelp)
			}
			if tt.wantHelp && !strings.Contains(stderr.String(), "Usage: txt2epub convert") {
				t.Errorf("help should print convert usage, got %q", stderr.String())
			}
		})
	}
}
