package render

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/zht7063/iblog/pkg/interfaces"
)

// ErrTemplateDirRequired indicates the renderer was constructed without a
// template directory.
var ErrTemplateDirRequired = errors.New("render: template directory is required")

// Pongo2Renderer implements interfaces.TemplateRenderer over a directory of
// pongo2 templates. Templates are cached by the underlying set after first
// load, so repeated page renders do not re-read the files.
type Pongo2Renderer struct {
	set *pongo2.TemplateSet
}

var _ interfaces.TemplateRenderer = (*Pongo2Renderer)(nil)

// NewPongo2Renderer constructs a renderer rooted at the supplied template
// directory.
func NewPongo2Renderer(dir string) (*Pongo2Renderer, error) {
	if dir == "" {
		return nil, ErrTemplateDirRequired
	}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("render: template loader for %s: %w", dir, err)
	}

	return &Pongo2Renderer{
		set: pongo2.NewSet("iblog", loader),
	}, nil
}

// Render loads the named template and executes it with the provided context.
func (r *Pongo2Renderer) Render(name string, data map[string]any) (string, error) {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("render: load template %s: %w", name, err)
	}

	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("render: execute template %s: %w", name, err)
	}
	return out, nil
}

// RenderString executes an inline template with the provided context.
func (r *Pongo2Renderer) RenderString(templateContent string, data map[string]any) (string, error) {
	tpl, err := r.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("render: parse inline template: %w", err)
	}

	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("render: execute inline template: %w", err)
	}
	return out, nil
}
