package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	txt2epub "github.com/alnah/go-txt2epub"
	"github.com/alnah/go-txt2epub/internal/config"
	"github.com/alnah/go-txt2epub/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage    = errors.New("invalid usage")
	ErrNoInput  = errors.New("no source files given")
	ErrNoOutput = errors.New("no output path given (use -o or output.path)")
)

// Converter is the subset of *txt2epub.Converter the CLI drives.
type Converter interface {
	Convert(ctx context.Context, destination string, sources []string, opts txt2epub.Options) (*txt2epub.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*txt2epub.Converter)(nil)

// newConverter builds the converter; swapped in tests.
var newConverter = func(opts ...txt2epub.Option) (Converter, error) {
	return txt2epub.NewConverter(opts...)
}

// runConvert loads configuration, merges overrides and converts sources
// into one archive.
func runConvert(ctx context.Context, sources []string, flags *convertFlags, env *Environment) error {
	start := env.Now()
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := resolveConfig(flags, env, logger)
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		return ErrNoInput
	}
	if cfg.Output.Path == "" {
		return ErrNoOutput
	}

	// Resolve "auto" once so every document of the book shares one date.
	date, err := txt2epub.ResolveDate(cfg.Book.Date, env.Now())
	if err != nil {
		return err
	}
	cfg.Book.Date = date

	conv, err := newConverter(converterOptions(cfg, flags, env, logger)...)
	if err != nil {
		return withHint(err, cfg)
	}

	logger.Debug("converting", "sources", len(sources), "output", cfg.Output.Path)
	result, err := conv.Convert(ctx, cfg.Output.Path, sources, buildOptions(cfg))
	if err != nil {
		return withHint(err, cfg)
	}

	printResult(env.Stdout, result, flags.common, env.Now().Sub(start))
	return nil
}

// resolveConfig layers defaults, config file, environment, vars file and
// flags, then validates the result.
func resolveConfig(flags *convertFlags, env *Environment, logger *slog.Logger) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(logger, env.Environ(), envCfg)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)

	if flags.varsFile != "" {
		vars, err := config.LoadVars(flags.varsFile)
		if err != nil {
			return nil, fmt.Errorf("loading vars file: %w", err)
		}
		if cfg.Vars == nil {
			cfg.Vars = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			cfg.Vars[k] = v
		}
	}

	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig loads the file named by the flag, else by TXT2EPUB_CONFIG,
// else returns defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	setString(&cfg.Output.Path, flags.output)

	setString(&cfg.Book.Title, flags.book.title)
	setString(&cfg.Book.Author, flags.book.author)
	setString(&cfg.Book.Language, flags.book.language)
	setString(&cfg.Book.Identifier, flags.book.identifier)
	setString(&cfg.Book.Publisher, flags.book.publisher)
	setString(&cfg.Book.Description, flags.book.description)
	setString(&cfg.Book.Date, flags.book.date)

	if flags.set("keep-line-breaks") {
		cfg.Text.KeepLineBreaks = flags.text.keepLineBreaks
	}
	if flags.set("markdown") {
		cfg.Text.Markdown = flags.text.markdown
	}
	setString(&cfg.Text.Encoding, flags.text.encoding)

	setString(&cfg.Markup.Backend, flags.markup.backend)
	setString(&cfg.Markup.Command, flags.markup.command)
	if flags.markup.timeout > 0 {
		cfg.Markup.Timeout = flags.markup.timeout
	}

	setString(&cfg.Assets.Style, flags.assets.style)
	setString(&cfg.Assets.TemplateSet, flags.assets.template)
	setString(&cfg.Assets.BasePath, flags.assets.assetPath)

	if len(flags.vars) > 0 && cfg.Vars == nil {
		cfg.Vars = make(map[string]string, len(flags.vars))
	}
	for k, v := range flags.vars {
		cfg.Vars[k] = v
	}
}

// converterOptions translates configuration into converter options.
func converterOptions(cfg *config.Config, flags *convertFlags, env *Environment, logger *slog.Logger) []txt2epub.Option {
	opts := []txt2epub.Option{
		txt2epub.WithLogger(logger),
		txt2epub.WithBackend(cfg.Markup.Backend, cfg.Markup.Command),
		txt2epub.WithKeepWorkArea(flags.keepWorkArea),
	}
	if env.Runner != nil {
		opts = append(opts, txt2epub.WithRunner(env.Runner))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, txt2epub.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.TemplateSet != "" {
		opts = append(opts, txt2epub.WithTemplateSetName(cfg.Assets.TemplateSet))
	}
	if cfg.Assets.Style != "" {
		opts = append(opts, txt2epub.WithStyle(cfg.Assets.Style))
	}
	if cfg.Markup.Timeout > 0 {
		opts = append(opts, txt2epub.WithPublishTimeout(cfg.Markup.Timeout))
	}
	return opts
}

// buildOptions assembles per-conversion options. Book metadata is layered
// over free-form vars, so --title wins over --var title=...
func buildOptions(cfg *config.Config) txt2epub.Options {
	vars := make(map[string]any, len(cfg.Vars)+7)
	for k, v := range cfg.Vars {
		vars[k] = v
	}
	book := map[string]string{
		"title":       cfg.Book.Title,
		"author":      cfg.Book.Author,
		"language":    cfg.Book.Language,
		"identifier":  cfg.Book.Identifier,
		"publisher":   cfg.Book.Publisher,
		"description": cfg.Book.Description,
		"date":        cfg.Book.Date,
	}
	for k, v := range book {
		if v != "" {
			vars[k] = v
		}
	}
	return txt2epub.Options{
		KeepLineBreaks: cfg.Text.KeepLineBreaks,
		Markdown:       cfg.Text.Markdown,
		Encoding:       cfg.Text.Encoding,
		Vars:           vars,
	}
}

// withHint appends an actionable hint for errors users can fix themselves.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, txt2epub.ErrPublisherNotFound):
		backend := cfg.Markup.Backend
		if cfg.Markup.Command != "" {
			backend = "custom"
		}
		hint = hints.ForPublisherNotFound(backend)
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, txt2epub.ErrInvalidEncoding):
		hint = hints.ForEncoding()
	case errors.Is(err, txt2epub.ErrStyleNotFound):
		hint = hints.ForAssetNotFound(txt2epub.AvailableStyles(cfg.Assets.BasePath))
	case errors.Is(err, txt2epub.ErrArchive):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// newLogger builds the stderr text logger for the requested verbosity.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printResult reports the written archive on stdout.
func printResult(w io.Writer, result *txt2epub.Result, common commonFlags, elapsed time.Duration) {
	if common.quiet {
		return
	}
	if common.verbose {
		fmt.Fprintf(w, "Created %s (%d entries, %s)\n", result.Destination, len(result.Entries), elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "Created %s\n", result.Destination)
	}
	if result.WorkArea != "" {
		fmt.Fprintf(w, "Work area kept at %s\n", result.WorkArea)
	}
}
