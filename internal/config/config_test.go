package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Book.Language != "en" {
		t.Errorf("Book.Language = %q, want %q", cfg.Book.Language, "en")
	}
	if cfg.Text.Encoding != "utf-8" {
		t.Errorf("Text.Encoding = %q, want %q", cfg.Text.Encoding, "utf-8")
	}
	if cfg.Text.KeepLineBreaks {
		t.Error("Text.KeepLineBreaks = true, want false")
	}
	if cfg.Markup.Backend != BackendDocutils {
		t.Errorf("Markup.Backend = %q, want %q", cfg.Markup.Backend, BackendDocutils)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"long title", func(c *Config) { c.Book.Title = strings.Repeat("t", MaxTitleLength+1) }, ErrFieldTooLong},
		{"long author", func(c *Config) { c.Book.Author = strings.Repeat("a", MaxAuthorLength+1) }, ErrFieldTooLong},
		{"long description", func(c *Config) { c.Book.Description = strings.Repeat("d", MaxDescriptionLength+1) }, ErrFieldTooLong},
		{"long style", func(c *Config) { c.Assets.Style = strings.Repeat("s", MaxNameLength+1) }, ErrFieldTooLong},
		{"pandoc backend", func(c *Config) { c.Markup.Backend = "pandoc" }, nil},
		{"backend is case-insensitive", func(c *Config) { c.Markup.Backend = "Pandoc" }, nil},
		{"empty backend", func(c *Config) { c.Markup.Backend = "" }, nil},
		{"unknown backend", func(c *Config) { c.Markup.Backend = "asciidoc" }, ErrInvalidValue},
		{"negative timeout", func(c *Config) { c.Markup.Timeout = -time.Second }, ErrInvalidValue},
		{"var ok", func(c *Config) { c.Vars = map[string]string{"series": "Voyages"} }, nil},
		{"var empty key", func(c *Config) { c.Vars = map[string]string{"": "x"} }, ErrInvalidValue},
		{"var long value", func(c *Config) {
			c.Vars = map[string]string{"k": strings.Repeat("v", MaxVarValueLength+1)}
		}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `book:
  title: "Moby Dick"
  author: "Herman Melville"
  date: "auto:year"
text:
  keepLineBreaks: true
  encoding: windows-1252
markup:
  backend: pandoc
  timeout: 30s
assets:
  style: sans
vars:
  series: "Classics"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Book.Title != "Moby Dick" {
			t.Errorf("Book.Title = %q", cfg.Book.Title)
		}
		if cfg.Book.Author != "Herman Melville" {
			t.Errorf("Book.Author = %q", cfg.Book.Author)
		}
		if cfg.Book.Date != "auto:year" {
			t.Errorf("Book.Date = %q", cfg.Book.Date)
		}
		if !cfg.Text.KeepLineBreaks {
			t.Error("Text.KeepLineBreaks = false, want true")
		}
		if cfg.Text.Encoding != "windows-1252" {
			t.Errorf("Text.Encoding = %q", cfg.Text.Encoding)
		}
		if cfg.Markup.Backend != BackendPandoc {
			t.Errorf("Markup.Backend = %q", cfg.Markup.Backend)
		}
		if cfg.Markup.Timeout != 30*time.Second {
			t.Errorf("Markup.Timeout = %v, want 30s", cfg.Markup.Timeout)
		}
		if cfg.Assets.Style != "sans" {
			t.Errorf("Assets.Style = %q", cfg.Assets.Style)
		}
		if cfg.Vars["series"] != "Classics" {
			t.Errorf("Vars[series] = %q", cfg.Vars["series"])
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadConfig(writeConfig(t, "book:\n  title: \"Short\"\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Book.Language != "en" {
			t.Errorf("Book.Language = %q, want default en", cfg.Book.Language)
		}
		if cfg.Markup.Backend != BackendDocutils {
			t.Errorf("Markup.Backend = %q, want default", cfg.Markup.Backend)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound listing paths", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("surely-not-a-config-name-7f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "surely-not-a-config-name-7f3a.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(writeConfig(t, "book: [unclosed")); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(writeConfig(t, "footer:\n  enabled: true\n")); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation errors propagate", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(writeConfig(t, "markup:\n  backend: asciidoc\n")); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("book")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "book.yaml" || paths[1] != "book.yml" {
		t.Errorf("local paths = %v, want book.yaml then book.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, UserConfigDirName) {
			t.Errorf("user path %q should be under %s", p, UserConfigDirName)
		}
	}
}

func TestLoadVars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vars.yaml")
	if err := os.WriteFile(path, []byte("series: Tales\nvolume: \"3\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	vars, err := LoadVars(path)
	if err != nil {
		t.Fatalf("LoadVars() error = %v", err)
	}
	if vars["series"] != "Tales" || vars["volume"] != "3" {
		t.Errorf("LoadVars() = %v", vars)
	}

	if _, err := LoadVars(filepath.Join(dir, "none.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file error = %v, want ErrConfigNotFound", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- a\n- b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVars(bad); !errors.Is(err, ErrConfigParse) {
		t.Errorf("list input error = %v, want ErrConfigParse", err)
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Book.Title = "Round Trip"
	cfg.Text.KeepLineBreaks = true
	cfg.Vars = map[string]string{"series": "S"}

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if !strings.Contains(string(data), "title: Round Trip") {
		t.Errorf("YAML() = %s", data)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(YAML()) error = %v", err)
	}
	if got.Book.Title != "Round Trip" || !got.Text.KeepLineBreaks || got.Vars["series"] != "S" {
		t.Errorf("round trip = %+v", got)
	}
}
