package txt2epub

import (
	"reflect"
	"testing"
)

func TestDeriveItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		markdown bool
		want     SourceItem
	}{
		{
			name: "spaces become underscores",
			path: "My File.txt",
			want: SourceItem{Path: "My File.txt", Name: "My_File", Type: "txt", Kind: PlainText},
		},
		{
			name: "directory dropped",
			path: "/books/moby/chapter 1.rst",
			want: SourceItem{Path: "/books/moby/chapter 1.rst", Name: "chapter_1", Type: "rst", Kind: StructuredText},
		},
		{
			name: "type lowercased",
			path: "Cover.PNG",
			want: SourceItem{Path: "Cover.PNG", Name: "Cover", Type: "png", Kind: Image},
		},
		{
			name: "only last extension stripped",
			path: "notes.v2.final.txt",
			want: SourceItem{Path: "notes.v2.final.txt", Name: "notes.v2.final", Type: "txt", Kind: PlainText},
		},
		{
			name: "no extension is all stem",
			path: "README",
			want: SourceItem{Path: "README", Name: "README", Type: "", Kind: PlainText},
		},
		{
			name: "dot in directory ignored",
			path: "dir.v2/appendix",
			want: SourceItem{Path: "dir.v2/appendix", Name: "appendix", Type: "", Kind: PlainText},
		},
		{
			name: "unknown type is plain text",
			path: "data.csv",
			want: SourceItem{Path: "data.csv", Name: "data", Type: "csv", Kind: PlainText},
		},
		{
			name: "markdown off by default",
			path: "guide.md",
			want: SourceItem{Path: "guide.md", Name: "guide", Type: "md", Kind: PlainText},
		},
		{
			name:     "markdown opt-in",
			path:     "guide.markdown",
			markdown: true,
			want:     SourceItem{Path: "guide.markdown", Name: "guide", Type: "markdown", Kind: Markdown},
		},
		{
			name: "jpg is not an image item",
			path: "photo.jpg",
			want: SourceItem{Path: "photo.jpg", Name: "photo", Type: "jpg", Kind: PlainText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DeriveItem(tt.path, tt.markdown)
			if got != tt.want {
				t.Errorf("DeriveItem(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDeriveItem_Deterministic(t *testing.T) {
	t.Parallel()

	a := DeriveItem("x/My Chapter.txt", false)
	b := DeriveItem("x/My Chapter.txt", false)
	if a != b {
		t.Errorf("DeriveItem not deterministic: %+v vs %+v", a, b)
	}
}

func TestDeriveItems_PreservesOrder(t *testing.T) {
	t.Parallel()

	got := DeriveItems([]string{"intro.txt", "cover.png", "chapter1.rst"}, false)
	names := make([]string, len(got))
	for i, it := range got {
		names[i] = it.Name
	}
	if !reflect.DeepEqual(names, []string{"intro", "cover", "chapter1"}) {
		t.Errorf("names = %v", names)
	}
}

func TestSourceItem_OutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"cover.png", "cover.png"},
		{"intro.txt", "intro.html"},
		{"ch.rst", "ch.html"},
		{"README", "README.html"},
	}
	for _, tt := range tests {
		if got := DeriveItem(tt.path, false).OutputName(); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestItemKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      ItemKind
		str       string
		mediaType string
	}{
		{PlainText, "plain-text", MediaTypeXHTML},
		{StructuredText, "structured-text", MediaTypeXHTML},
		{Image, "image", MediaTypePNG},
		{Markdown, "markdown", MediaTypeXHTML},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.kind.MediaType(); got != tt.mediaType {
			t.Errorf("%s MediaType() = %q, want %q", tt.str, got, tt.mediaType)
		}
	}
}
