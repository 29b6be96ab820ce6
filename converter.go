package txt2epub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-txt2epub/internal/assets"
	"github.com/alnah/go-txt2epub/internal/epub"
	"github.com/alnah/go-txt2epub/internal/fileutil"
	"github.com/alnah/go-txt2epub/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.StructuredTextPublisher = (*pipeline.CommandPublisher)(nil)
	_ pipeline.CommandRunner           = (*pipeline.ExecRunner)(nil)
	_ pipeline.MarkdownConverter       = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TemplateRenderer        = (*pipeline.TextRenderer)(nil)
	_ StructuredTextPublisher          = (pipeline.StructuredTextPublisher)(nil)
	_ AssetLoader                      = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader               = (*publicToInternalAdapter)(nil)
)

// Defaults filled into the template data when Vars leave them unset.
const (
	DefaultTitle    = "Untitled"
	DefaultLanguage = "en"
)

// Converter builds EPUB files. Create with NewConverter; a Converter holds
// no per-run state and may be reused for several conversions.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	renderer          pipeline.TemplateRenderer
	publisher         StructuredTextPublisher
	runner            CommandRunner
	markdown          pipeline.MarkdownConverter
	logger            *slog.Logger
	style             string
	highlightCSS      string
}

// NewConverter creates a Converter. It loads and parses the template set,
// resolves the extra style and prepares the reStructuredText publisher.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			templateSetName: assets.DefaultTemplateSetName,
			backend:         pipeline.BackendDocutils,
			now:             time.Now,
		},
		assetLoader: assets.NewEmbeddedLoader(),
		markdown:    pipeline.NewGoldmarkConverter(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, publicError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.loadTemplates(); err != nil {
		return nil, err
	}
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	if err := c.preparePublisher(); err != nil {
		return nil, err
	}

	css, err := pipeline.HighlightCSS()
	if err != nil {
		return nil, err
	}
	c.highlightCSS = css

	return c, nil
}

func (c *Converter) loadTemplates() error {
	var ts *assets.TemplateSet
	if c.cfg.templateSet != nil {
		ts = toInternalSet(c.cfg.templateSet)
	} else {
		var err error
		ts, err = c.assetLoader.LoadTemplateSet(c.cfg.templateSetName)
		if err != nil {
			return fmt.Errorf("loading template set %q: %w", c.cfg.templateSetName, publicError(err))
		}
		if len(ts.Overridden) > 0 {
			c.logger.Debug("custom templates", "stage", "setup", "set", ts.Name, "files", ts.Overridden)
		}
	}

	r, err := pipeline.NewTextRenderer(ts.Sources())
	if err != nil {
		return publicError(err)
	}
	c.renderer = r
	return nil
}

// resolveStyle turns the style input (name or path) into CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %w", ErrStyleNotFound, input, err)
		}
		c.style = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, publicError(err))
	}
	c.style = css
	return nil
}

func (c *Converter) preparePublisher() error {
	if c.publisher != nil {
		return nil
	}
	p, err := pipeline.NewCommandPublisher(c.cfg.backend, c.cfg.command)
	if err != nil {
		return publicError(err)
	}
	if c.runner != nil {
		p.Runner = c.runner
	}
	c.publisher = p
	return nil
}

// Convert builds the EPUB at destination from sources, in order.
//
// Each source is transcoded by kind into the work area, the package,
// stylesheet and navigation documents are rendered, and everything is packed
// into destination. destination is replaced atomically and is untouched on
// failure. The work area is removed on every path unless kept.
func (c *Converter) Convert(ctx context.Context, destination string, sources []string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(destination, sources); err != nil {
		return nil, err
	}
	encoding, err := pipeline.ValidateEncoding(opts.Encoding)
	if err != nil {
		return nil, publicError(err)
	}

	items := DeriveItems(sources, opts.Markdown)
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyName, it.Path)
		}
	}

	wa, err := epub.NewWorkArea(c.cfg.tempDir)
	if err != nil {
		return nil, publicError(err)
	}
	if c.cfg.keepWorkArea {
		wa.Keep()
	}
	defer func() {
		if closeErr := wa.Close(); closeErr != nil {
			c.logger.Warn("work area cleanup failed", "stage", "cleanup", "path", wa.Root(), "error", closeErr)
		}
	}()
	c.logger.Debug("work area ready", "stage", "scaffold", "path", wa.Root())

	b := &build{
		conv:     c,
		wa:       wa,
		opts:     opts,
		encoding: encoding,
		titles:   make(map[string]string, len(items)),
	}
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.transcode(ctx, it); err != nil {
			return nil, err
		}
	}

	data, err := c.templateData(opts, items, b.included, b.titles)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{epub.PackageFile, epub.StylesheetFile, epub.NavigationFile} {
		if err := c.renderControl(wa, name, data); err != nil {
			return nil, err
		}
	}

	entries, err := wa.Archive(destination, b.included)
	if err != nil {
		return nil, publicError(err)
	}
	c.logger.Debug("archive written", "stage", "archive", "path", destination, "entries", len(entries))

	res := &Result{Destination: destination, Entries: entries, Items: items}
	if wa.Kept() {
		res.WorkArea = wa.Root()
	}
	return res, nil
}

func validateInput(destination string, sources []string) error {
	if destination == "" {
		return ErrEmptyDestination
	}
	if len(sources) == 0 {
		return ErrNoSources
	}
	for i, s := range sources {
		if s == "" {
			return fmt.Errorf("%w: index %d", ErrEmptySource, i)
		}
	}
	return nil
}

func (c *Converter) renderControl(wa *epub.WorkArea, name string, data map[string]any) error {
	out, err := c.render(name, data)
	if err != nil {
		return err
	}
	if err := wa.WriteContent(name, out); err != nil {
		return wrapError(ErrWorkArea, err)
	}
	c.logger.Debug("rendered", "stage", "render", "entry", name)
	return nil
}

func (c *Converter) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := c.renderer.Render(&b, name, data); err != nil {
		return "", publicError(err)
	}
	return b.String(), nil
}

// templateData assembles the mapping the control templates render against.
func (c *Converter) templateData(opts Options, items []SourceItem, included []string, titles map[string]string) (map[string]any, error) {
	data := make(map[string]any, len(opts.Vars)+8)
	for k, v := range opts.Vars {
		data[k] = v
	}

	setDefault(data, "title", DefaultTitle)
	setDefault(data, "language", DefaultLanguage)
	setDefault(data, "identifier", "urn:uuid:"+uuid.NewString())
	if date, ok := data["date"].(string); ok && date != "" {
		resolved, err := ResolveDate(date, c.cfg.now())
		if err != nil {
			return nil, err
		}
		data["date"] = resolved
	}

	names := make([]string, len(items))
	hasMarkdown := false
	for i, it := range items {
		names[i] = it.Name
		hasMarkdown = hasMarkdown || it.Kind == Markdown
	}

	data["keep_line_breaks"] = opts.KeepLineBreaks
	data["names"] = names
	data["items"] = manifestItems(items, included, titles)
	data["style"] = c.style
	data["highlight_css"] = ""
	if hasMarkdown {
		data["highlight_css"] = c.highlightCSS
	}
	return data, nil
}

// setDefault fills key when it is missing, nil or an empty string.
func setDefault(data map[string]any, key string, value any) {
	v, ok := data[key]
	if !ok || v == nil {
		data[key] = value
		return
	}
	if s, isString := v.(string); isString && s == "" {
		data[key] = value
	}
}

// manifestItems describes each included entry once, in first-seen order.
func manifestItems(items []SourceItem, included []string, titles map[string]string) []ManifestItem {
	kinds := make(map[string]SourceItem, len(items))
	for _, it := range items {
		kinds[it.OutputName()] = it
	}

	out := make([]ManifestItem, 0, len(included))
	play := 0
	for i, name := range included {
		it := kinds[name]
		m := ManifestItem{
			ID:        fmt.Sprintf("item-%d", i+1),
			Name:      it.Name,
			Href:      url.PathEscape(name),
			MediaType: it.Kind.MediaType(),
			Title:     titles[name],
			Kind:      it.Kind,
			InSpine:   it.Kind != Image,
		}
		if m.Title == "" {
			m.Title = it.Name
		}
		if m.InSpine {
			play++
			m.PlayOrder = play
		}
		out = append(out, m)
	}
	return out
}
