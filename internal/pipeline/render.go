package pipeline

import (
	"errors"
	"fmt"
	"html"
	"io"
	"text/template"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateParse  = errors.New("template parse failed")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrNoTemplate     = errors.New("template not loaded")
)

// TemplateRenderer renders a named template against a variable mapping.
type TemplateRenderer interface {
	Render(w io.Writer, name string, data any) error
}

// TextRenderer renders named text/template templates. Templates are not
// auto-escaped: values must pass through the escape function or be escaped
// beforehand, as plain-text lines are.
type TextRenderer struct {
	root *template.Template
}

// Funcs available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"escape": escapeValue,
	}
}

func escapeValue(v any) string {
	if v == nil {
		return ""
	}
	return html.EscapeString(fmt.Sprint(v))
}

// NewTextRenderer parses every source under its name.
func NewTextRenderer(sources map[string]string) (*TextRenderer, error) {
	root := template.New("").Funcs(Funcs())
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
	}
	return &TextRenderer{root: root}, nil
}

// Render executes the template called name.
func (r *TextRenderer) Render(w io.Writer, name string, data any) error {
	t := r.root.Lookup(name)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNoTemplate, name)
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return nil
}

