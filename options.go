package txt2epub

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings collected from options before NewConverter
// resolves them.
type converterConfig struct {
	assetPath       string
	templateSetName string
	templateSet     *TemplateSet
	styleInput      string
	backend         string
	command         string
	publishTimeout  time.Duration
	tempDir         string
	keepWorkArea    bool
	now             func() time.Time
}

// WithAssetPath loads styles and template sets from dir first, falling back
// to the built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader replaces asset loading entirely.
// Takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = l
	}
}

// WithTemplateSetName selects a named template set from the asset loader.
func WithTemplateSetName(name string) Option {
	return func(c *Converter) {
		c.cfg.templateSetName = name
	}
}

// WithTemplateSet uses ts directly instead of loading a set by name.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithStyle appends an extra stylesheet: a style name, or a path to a CSS
// file when the value contains a path separator.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPath
	}
}

// WithBackend selects the reStructuredText publisher ("docutils" or
// "pandoc"). A non-empty command replaces the backend's executable.
func WithBackend(backend, command string) Option {
	return func(c *Converter) {
		c.cfg.backend = backend
		c.cfg.command = command
	}
}

// WithPublisher replaces the reStructuredText publisher.
// Takes precedence over WithBackend and WithRunner.
func WithPublisher(p StructuredTextPublisher) Option {
	return func(c *Converter) {
		c.publisher = p
	}
}

// WithRunner runs the built-in publisher's command through r.
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}

// WithPublishTimeout bounds each reStructuredText publish call.
// Panics if d is not positive.
func WithPublishTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("txt2epub: WithPublishTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.publishTimeout = d
	}
}

// WithLogger sets the logger for stage records. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTempDir sets the parent directory of work areas (os.TempDir when empty).
func WithTempDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.tempDir = dir
	}
}

// WithKeepWorkArea leaves the scratch tree on disk after a conversion and
// reports it in Result.WorkArea.
func WithKeepWorkArea(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepWorkArea = keep
	}
}
