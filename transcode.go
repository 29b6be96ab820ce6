package txt2epub

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-txt2epub/internal/assets"
	"github.com/alnah/go-txt2epub/internal/epub"
	"github.com/alnah/go-txt2epub/internal/fileutil"
	"github.com/alnah/go-txt2epub/internal/pipeline"
)

// build carries the state of one Convert call.
type build struct {
	conv     *Converter
	wa       *epub.WorkArea
	opts     Options
	encoding string
	included []string          // output names, first-seen order
	titles   map[string]string // output name → navigation label
}

// transcode writes one item into content/ and records it.
func (b *build) transcode(ctx context.Context, it SourceItem) error {
	name := it.OutputName()
	log := b.conv.logger.With("item", it.Path, "kind", it.Kind.String(), "entry", name)

	if b.wa.Exists(name) {
		// kept deterministic: the later source replaces the earlier output
		log.Warn("duplicate derived name, later source overwrites earlier output", "stage", "transcode")
	}

	var (
		title string
		err   error
	)
	switch it.Kind {
	case Image:
		err = b.copyImage(it, name)
	case StructuredText:
		title, err = b.publishStructured(ctx, it, name)
	case Markdown:
		title, err = b.convertMarkdown(ctx, it, name)
	default:
		err = b.wrapText(it, name)
	}
	if err != nil {
		return err
	}

	if _, seen := b.titles[name]; !seen {
		b.included = append(b.included, name)
	}
	b.titles[name] = title
	log.Debug("transcoded", "stage", "transcode", "title", title)
	return nil
}

func (b *build) copyImage(it SourceItem, name string) error {
	if err := b.wa.CopyIntoContent(it.Path, name); err != nil {
		if errors.Is(err, fileutil.ErrCopySource) {
			return fmt.Errorf("%w: %s: %w", ErrSourceRead, it.Path, err)
		}
		return wrapError(ErrWorkArea, err)
	}
	return nil
}

func (b *build) read(it SourceItem) (string, error) {
	text, err := pipeline.ReadSource(it.Path, b.encoding)
	if err != nil {
		return "", publicError(err)
	}
	return text, nil
}

func (b *build) publishStructured(ctx context.Context, it SourceItem, name string) (string, error) {
	text, err := b.read(it)
	if err != nil {
		return "", err
	}

	if d := b.conv.cfg.publishTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	doc, err := b.conv.publisher.Publish(ctx, text)
	if err != nil {
		return "", fmt.Errorf("publishing %s: %w", it.Path, publicError(err))
	}

	doc, stripped := pipeline.StripHTMLLang(doc)
	b.conv.logger.Debug("lang attribute", "stage", "transcode", "item", it.Path, "stripped", stripped)

	if err := b.write(name, doc); err != nil {
		return "", err
	}
	return pipeline.ExtractTitle(doc), nil
}

func (b *build) convertMarkdown(ctx context.Context, it SourceItem, name string) (string, error) {
	text, err := b.read(it)
	if err != nil {
		return "", err
	}
	doc, err := b.conv.markdown.ToXHTML(ctx, it.Name, text)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", it.Path, publicError(err))
	}
	if err := b.write(name, doc); err != nil {
		return "", err
	}
	return pipeline.ExtractTitle(doc), nil
}

func (b *build) wrapText(it SourceItem, name string) error {
	text, err := b.read(it)
	if err != nil {
		return err
	}

	tmpl := assets.ItemTemplate
	if b.opts.KeepLineBreaks {
		tmpl = assets.ItemBreaksTemplate
	}
	doc, err := b.conv.render(tmpl, map[string]any{
		"title": it.Name,
		"lines": pipeline.PrepareText(text, b.opts.KeepLineBreaks),
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", it.Path, err)
	}
	return b.write(name, doc)
}

func (b *build) write(name, doc string) error {
	if err := b.wa.WriteContent(name, doc); err != nil {
		return wrapError(ErrWorkArea, err)
	}
	return nil
}
