// Package render produces the HTML fragments of the textbook components:
// the exam question bank, the exam recording browser and the callouts.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders GitHub-flavored markdown. Raw HTML in the source is
// omitted from the output.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer with the GFM extensions enabled.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Render converts src to HTML.
func (m *Markdown) Render(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
