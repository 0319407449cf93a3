package interfaces

// TemplateRenderer produces final page output from a named template and a
// data context. The generator treats the rendered string as opaque; it never
// inspects or post-processes template output.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
	RenderString(templateContent string, data map[string]any) (string, error)
}
