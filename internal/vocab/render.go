package vocab

import (
	"html"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
)

// Markdown converts markdown source to HTML.
type Markdown interface {
	Render(src string) (template.HTML, error)
}

// Placeholders use private-use code points so markdown leaves them alone.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

func placeholder(i int) string {
	return placeholderOpen + strconv.Itoa(i) + placeholderClose
}

// RenderHTML renders text as markdown with every tagged term wrapped in a
// span carrying its definition as the hover title. With nothing tagged, or
// when markdown drops a term or moves it into a tag attribute, the output is
// plain markdown rendering of text.
func RenderHTML(md Markdown, text string, items []Item, policy Policy) (template.HTML, error) {
	res := Highlight(text, items, policy)
	if !res.Matched() {
		return md.Render(text)
	}

	var src strings.Builder
	var tagged []Segment
	for _, s := range res.Segments {
		if !s.Tagged {
			src.WriteString(s.Text)
			continue
		}
		src.WriteString(placeholder(len(tagged)))
		tagged = append(tagged, s)
	}

	out, err := md.Render(src.String())
	if err != nil {
		return "", err
	}

	rendered := string(out)
	for i, s := range tagged {
		ph := placeholder(i)
		at := strings.Index(rendered, ph)
		if at < 0 || insideTag(rendered[:at]) {
			slog.Debug("vocabulary term not taggable after markdown", "term", s.Text)
			return md.Render(text)
		}
		rendered = rendered[:at] + Span(s) + rendered[at+len(ph):]
	}
	return template.HTML(rendered), nil
}

// insideTag reports whether html ends within an unclosed tag. Markdown
// escapes text angle brackets, so any raw '<' opens a tag.
func insideTag(prefix string) bool {
	return strings.LastIndexByte(prefix, '<') > strings.LastIndexByte(prefix, '>')
}

// Span returns the tooltip markup for a tagged segment.
func Span(s Segment) string {
	return `<span class="vocab-word" title="` + html.EscapeString(s.Definition) + `">` +
		html.EscapeString(s.Text) + `</span>`
}
