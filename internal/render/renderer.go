package render

import (
	"github.com/p-n-ai/pai-textbook/internal/video"
)

// Renderer writes component fragments.
type Renderer struct {
	md     *Markdown
	origin string
}

// New creates a Renderer. origin is passed to embedded players so they accept
// API messages from the page; empty leaves it out.
func New(md *Markdown, origin string) *Renderer {
	if md == nil {
		md = NewMarkdown()
	}
	return &Renderer{md: md, origin: origin}
}

// Markdown returns the renderer's markdown converter.
func (r *Renderer) Markdown() *Markdown {
	return r.md
}

func (r *Renderer) embedURL(id string) string {
	return video.EmbedURL(id, r.origin)
}
