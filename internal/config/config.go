package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-txt2epub/internal/fileutil"
	"github.com/alnah/go-txt2epub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 100
	MaxLanguageLength    = 35 // BCP 47 tags stay well below this
	MaxIdentifierLength  = 200
	MaxPublisherLength   = 100
	MaxDescriptionLength = 2000
	MaxDateLength        = 60 // "auto:FORMAT" or a literal date
	MaxEncodingLength    = 40
	MaxCommandLength     = 1024
	MaxPathLength        = 4096
	MaxNameLength        = 64 // template set and style names
	MaxVarKeyLength      = 64
	MaxVarValueLength    = 2000
)

// Backends accepted by markup.backend.
const (
	BackendDocutils = "docutils"
	BackendPandoc   = "pandoc"
)

// UserConfigDirName is the directory searched under os.UserConfigDir.
const UserConfigDirName = "go-txt2epub"

// Config holds everything a conversion can be configured with.
type Config struct {
	Book   BookConfig        `yaml:"book"`
	Text   TextConfig        `yaml:"text"`
	Markup MarkupConfig      `yaml:"markup"`
	Assets AssetsConfig      `yaml:"assets"`
	Output OutputConfig      `yaml:"output"`
	Vars   map[string]string `yaml:"vars"` // extra template variables
}

// BookConfig is the package metadata written to the OPF.
type BookConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`   // default "en"
	Identifier  string `yaml:"identifier"` // empty = random urn:uuid
	Publisher   string `yaml:"publisher"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// TextConfig controls how plain-text items are read and split.
type TextConfig struct {
	KeepLineBreaks bool   `yaml:"keepLineBreaks"`
	Encoding       string `yaml:"encoding"` // WHATWG label, default utf-8
	Markdown       bool   `yaml:"markdown"` // convert .md/.markdown instead of wrapping them
}

// MarkupConfig selects the reStructuredText publisher.
type MarkupConfig struct {
	Backend string        `yaml:"backend"` // "docutils" (default) or "pandoc"
	Command string        `yaml:"command"` // overrides the backend's executable
	Timeout time.Duration `yaml:"timeout"` // 0 = no limit
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // empty = embedded assets only
	TemplateSet string `yaml:"templateSet"` // empty = "default"
	Style       string `yaml:"style"`       // extra stylesheet, empty = none
}

// OutputConfig defines the archive destination.
type OutputConfig struct {
	Path string `yaml:"path"`
}

type fieldLimit struct {
	name  string
	value string
	max   int
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; library users building a Config by hand can call it too.
func (c *Config) Validate() error {
	limits := []fieldLimit{
		{"book.title", c.Book.Title, MaxTitleLength},
		{"book.author", c.Book.Author, MaxAuthorLength},
		{"book.language", c.Book.Language, MaxLanguageLength},
		{"book.identifier", c.Book.Identifier, MaxIdentifierLength},
		{"book.publisher", c.Book.Publisher, MaxPublisherLength},
		{"book.description", c.Book.Description, MaxDescriptionLength},
		{"book.date", c.Book.Date, MaxDateLength},
		{"text.encoding", c.Text.Encoding, MaxEncodingLength},
		{"markup.command", c.Markup.Command, MaxCommandLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"assets.style", c.Assets.Style, MaxNameLength},
		{"output.path", c.Output.Path, MaxPathLength},
	}
	for _, l := range limits {
		if err := validateFieldLength(l.name, l.value, l.max); err != nil {
			return err
		}
	}

	for k, v := range c.Vars {
		if k == "" {
			return fmt.Errorf("%w: vars: empty key", ErrInvalidValue)
		}
		if err := validateFieldLength("vars key", k, MaxVarKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength("vars."+k, v, MaxVarValueLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Markup.Backend) {
	case "", BackendDocutils, BackendPandoc:
	default:
		return fmt.Errorf("%w: markup.backend %q (must be %s or %s)",
			ErrInvalidValue, c.Markup.Backend, BackendDocutils, BackendPandoc)
	}
	if c.Markup.Timeout < 0 {
		return fmt.Errorf("%w: markup.timeout must not be negative", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Book:   BookConfig{Language: "en"},
		Text:   TextConfig{Encoding: "utf-8"},
		Markup: MarkupConfig{Backend: BackendDocutils},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched for in standard locations. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, UserConfigDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// LoadVars reads template variables from a YAML mapping file. Keys outside
// the built-in metadata names are passed to templates unchanged.
func LoadVars(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- vars path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading vars file: %w", err)
	}

	vars := make(map[string]string)
	if err := yamlutil.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return vars, nil
}

// YAML encodes c in the format LoadConfig reads.
func (c *Config) YAML() ([]byte, error) {
	return yamlutil.Marshal(c)
}
