package pipeline

import "testing"

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"docutils title", `<html><body><div class="document"><h1 class="title">The  Voyage</h1></div></body></html>`, "The Voyage"},
		{"first of many", "<h1>One</h1><h1>Two</h1>", "One"},
		{"nested markup", "<h1>A <em>bold</em>\nmove</h1>", "A bold move"},
		{"none", "<p>no heading</p>", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractTitle(tt.doc); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
