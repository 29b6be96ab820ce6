package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-txt2epub/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "TXT2EPUB_"

// dotEnvFiles are tried in order; the first one found is loaded.
var dotEnvFiles = []string{".env", ".env.local"}

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath  string        // TXT2EPUB_CONFIG
	Output      string        // TXT2EPUB_OUTPUT
	Title       string        // TXT2EPUB_TITLE
	Author      string        // TXT2EPUB_AUTHOR
	Language    string        // TXT2EPUB_LANGUAGE
	Publisher   string        // TXT2EPUB_PUBLISHER
	Date        string        // TXT2EPUB_DATE
	Encoding    string        // TXT2EPUB_ENCODING
	Style       string        // TXT2EPUB_STYLE
	Template    string        // TXT2EPUB_TEMPLATE
	AssetPath   string        // TXT2EPUB_ASSET_PATH
	RSTBackend  string        // TXT2EPUB_RST_BACKEND
	RSTCommand  string        // TXT2EPUB_RST_COMMAND
	Timeout     time.Duration // TXT2EPUB_TIMEOUT
	timeoutText string
}

// knownEnvVars lists valid TXT2EPUB_* variables, used to flag typos.
var knownEnvVars = map[string]bool{
	"TXT2EPUB_CONFIG":      true,
	"TXT2EPUB_OUTPUT":      true,
	"TXT2EPUB_TITLE":       true,
	"TXT2EPUB_AUTHOR":      true,
	"TXT2EPUB_LANGUAGE":    true,
	"TXT2EPUB_PUBLISHER":   true,
	"TXT2EPUB_DATE":        true,
	"TXT2EPUB_ENCODING":    true,
	"TXT2EPUB_STYLE":       true,
	"TXT2EPUB_TEMPLATE":    true,
	"TXT2EPUB_ASSET_PATH":  true,
	"TXT2EPUB_RST_BACKEND": true,
	"TXT2EPUB_RST_COMMAND": true,
	"TXT2EPUB_TIMEOUT":     true,
}

// loadEnvConfig reads TXT2EPUB_* values through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	env := &envConfig{
		ConfigPath:  getenv("TXT2EPUB_CONFIG"),
		Output:      getenv("TXT2EPUB_OUTPUT"),
		Title:       getenv("TXT2EPUB_TITLE"),
		Author:      getenv("TXT2EPUB_AUTHOR"),
		Language:    getenv("TXT2EPUB_LANGUAGE"),
		Publisher:   getenv("TXT2EPUB_PUBLISHER"),
		Date:        getenv("TXT2EPUB_DATE"),
		Encoding:    getenv("TXT2EPUB_ENCODING"),
		Style:       getenv("TXT2EPUB_STYLE"),
		Template:    getenv("TXT2EPUB_TEMPLATE"),
		AssetPath:   getenv("TXT2EPUB_ASSET_PATH"),
		RSTBackend:  getenv("TXT2EPUB_RST_BACKEND"),
		RSTCommand:  getenv("TXT2EPUB_RST_COMMAND"),
		timeoutText: getenv("TXT2EPUB_TIMEOUT"),
	}
	if d, err := time.ParseDuration(env.timeoutText); err == nil && d > 0 {
		env.Timeout = d
	}
	return env
}

// warnUnknownEnvVars logs a warning for each unrecognized TXT2EPUB_* variable
// and for an unparsable timeout.
func warnUnknownEnvVars(logger *slog.Logger, environ []string, env *envConfig) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
	if env.timeoutText != "" && env.Timeout == 0 {
		logger.Warn("ignoring invalid duration", "name", "TXT2EPUB_TIMEOUT", "value", env.timeoutText)
	}
}

// applyEnvConfig overrides config file values with the set environment
// variables. Flags are applied afterwards by mergeFlags, so the order is
// flags > environment > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Output.Path, env.Output)
	setString(&cfg.Book.Title, env.Title)
	setString(&cfg.Book.Author, env.Author)
	setString(&cfg.Book.Language, env.Language)
	setString(&cfg.Book.Publisher, env.Publisher)
	setString(&cfg.Book.Date, env.Date)
	setString(&cfg.Text.Encoding, env.Encoding)
	setString(&cfg.Assets.Style, env.Style)
	setString(&cfg.Assets.TemplateSet, env.Template)
	setString(&cfg.Assets.BasePath, env.AssetPath)
	setString(&cfg.Markup.Backend, env.RSTBackend)
	setString(&cfg.Markup.Command, env.RSTCommand)
	if env.Timeout > 0 {
		cfg.Markup.Timeout = env.Timeout
	}
}

// setString assigns value to dst when value is not empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// readDotEnv parses the first existing file among paths.
// It returns the values and the path they came from.
func readDotEnv(paths ...string) (map[string]string, string, error) {
	lastErr := os.ErrNotExist
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err == nil {
			return values, p, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// applyDotEnv exports values without overriding variables already present
// in the process environment.
func applyDotEnv(values map[string]string, lookup func(string) (string, bool), setenv func(string, string) error) {
	for k, v := range values {
		if _, exists := lookup(k); exists {
			continue
		}
		_ = setenv(k, v)
	}
}
