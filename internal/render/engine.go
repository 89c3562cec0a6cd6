// Package render implements the template rendering strategies (C9): a
// DefaultRenderer for plain single-pass bundles and an McpServerRenderer
// that additionally fans a manifest file out once per OpenAPI operation.
package render

import (
	"bytes"
	"text/template"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// renderBody parses and executes content as a text/template body against
// data, naming the template after the manifest source so a parse or
// execution failure names the offending file. A missing key renders as
// the literal "<no value>" rather than an empty string or a hard error,
// keeping broken variable references visible in the generated output.
func renderBody(name, content string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return "", generation.Wrap(generation.KindRender, err, "parse template %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", generation.Wrap(generation.KindRender, err, "render template %s", name)
	}
	return buf.String(), nil
}

// fileContents indexes a Template's files by the path a manifest entry's
// "source" references.
func fileContents(tmpl *templates.Template) map[string]string {
	contents := make(map[string]string, len(tmpl.Files))
	for _, f := range tmpl.Files {
		contents[f.Path] = f.Content
	}
	return contents
}

func isTemplateFile(ft templates.FileType) bool {
	return ft.Kind == templates.FileKindTemplate
}
